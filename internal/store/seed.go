package store

import (
	"fmt"
	"time"

	"github.com/desertthunder/fivhter/internal/models"
)

// Demo user ids. The mock sign-in and sign-up flows hand these out.
const (
	DemoUserID = "mock-user-id"
	NewUserID  = "new-user-id"
)

type demoList struct {
	title        string
	description  string
	author       string
	category     string
	voteCount    int
	commentCount int
	createdAt    string
	items        [5][2]string // title, description
}

var demoLists = []demoList{
	{
		title:       "Top 5 Sci-Fi Movies of All Time",
		description: "The greatest science fiction films according to a sci-fi enthusiast",
		author:      "moviefan42", category: "entertainment", voteCount: 128, commentCount: 24,
		createdAt: "2025-03-15T10:30:00Z",
		items: [5][2]string{
			{"Blade Runner 2049", "A stunning visual masterpiece with deep philosophical themes"},
			{"Interstellar", "Christopher Nolan's space epic about love and time"},
			{"The Matrix", "A groundbreaking film that changed sci-fi forever"},
			{"Arrival", "A linguist learns to communicate with aliens in this thought-provoking film"},
			{"2001: A Space Odyssey", "Stanley Kubrick's masterpiece about evolution and AI"},
		},
	},
	{
		title:       "Top 5 Programming Languages for 2025",
		description: "The most in-demand programming languages for this year",
		author:      "techguru", category: "technology", voteCount: 97, commentCount: 31,
		createdAt: "2025-04-01T14:45:00Z",
		items:     [5][2]string{{"Python", ""}, {"TypeScript", ""}, {"Go", ""}, {"Rust", ""}, {"Kotlin", ""}},
	},
	{
		title:       "Top 5 Places to Visit in Europe",
		description: "Must-see destinations for your European adventure",
		author:      "wanderlust", category: "travel", voteCount: 85, commentCount: 18,
		createdAt: "2025-04-10T09:15:00Z",
		items:     [5][2]string{{"Lisbon", ""}, {"Kyoto of the Alps: Hallstatt", ""}, {"Rome", ""}, {"Edinburgh", ""}, {"Dubrovnik", ""}},
	},
	{
		title:       "Top 5 Fantasy Novel Series",
		description: "Epic fantasy series that will transport you to another world",
		author:      "bookworm99", category: "entertainment", voteCount: 76, commentCount: 22,
		createdAt: "2025-04-05T16:20:00Z",
		items:     [5][2]string{{"The Stormlight Archive", ""}, {"A Song of Ice and Fire", ""}, {"The Wheel of Time", ""}, {"Earthsea", ""}, {"The First Law", ""}},
	},
	{
		title:       "Top 5 Productivity Apps",
		description: "Apps that will help you get more done in less time",
		author:      "efficiency_expert", category: "technology", voteCount: 64, commentCount: 15,
		createdAt: "2025-04-18T11:10:00Z",
		items:     [5][2]string{{"Obsidian", ""}, {"Todoist", ""}, {"Raycast", ""}, {"Notion", ""}, {"Things", ""}},
	},
	{
		title:       "Top 5 Video Games of 2024",
		description: "The best gaming experiences from last year",
		author:      "gamer_elite", category: "entertainment", voteCount: 42, commentCount: 19,
		createdAt: "2025-04-20T08:30:00Z",
		items:     [5][2]string{{"Astro Bot", ""}, {"Balatro", ""}, {"Metaphor: ReFantazio", ""}, {"Animal Well", ""}, {"UFO 50", ""}},
	},
	{
		title:       "Top 5 Italian Dishes You Must Try",
		description: "Classic Italian recipes that will make your mouth water",
		author:      "foodlover", category: "food", voteCount: 53, commentCount: 12,
		createdAt: "2025-04-12T13:45:00Z",
		items:     [5][2]string{{"Cacio e pepe", ""}, {"Risotto alla milanese", ""}, {"Osso buco", ""}, {"Pizza napoletana", ""}, {"Tiramisu", ""}},
	},
	{
		title:       "Top 5 Machine Learning Frameworks",
		description: "The best tools for building AI applications in 2025",
		author:      "ai_enthusiast", category: "technology", voteCount: 67, commentCount: 28,
		createdAt: "2025-04-15T11:20:00Z",
		items:     [5][2]string{{"PyTorch", ""}, {"JAX", ""}, {"TensorFlow", ""}, {"scikit-learn", ""}, {"Hugging Face Transformers", ""}},
	},
	{
		title:       "Top 5 Hiking Trails in North America",
		description: "Amazing wilderness adventures for nature lovers",
		author:      "trailblazer", category: "travel", voteCount: 39, commentCount: 14,
		createdAt: "2025-04-09T16:55:00Z",
		items:     [5][2]string{{"John Muir Trail", ""}, {"West Coast Trail", ""}, {"Angels Landing", ""}, {"Highline Trail", ""}, {"Kalalau Trail", ""}},
	},
}

// DemoSnapshot returns the demo catalogue: the two mock accounts plus nine public lists across four categories.
//
// Comment counts are carried as denormalized totals without comment rows.
func DemoSnapshot() Snapshot {
	epoch := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	snap := Snapshot{
		Profiles: []models.Profile{
			{ID: DemoUserID, Username: "demo_user", CreatedAt: epoch},
			{ID: NewUserID, Username: "new_user", CreatedAt: epoch},
		},
	}

	for i, d := range demoLists {
		createdAt, err := time.Parse(time.RFC3339, d.createdAt)
		if err != nil {
			panic(fmt.Sprintf("invalid demo timestamp %q: %v", d.createdAt, err))
		}

		authorID := "user-" + d.author
		snap.Profiles = append(snap.Profiles, models.Profile{ID: authorID, Username: d.author, CreatedAt: epoch})

		listID := fmt.Sprintf("demo-%d", i+1)
		description, category := d.description, d.category
		snap.Lists = append(snap.Lists, models.List{
			ID:           listID,
			Title:        d.title,
			Description:  &description,
			UserID:       authorID,
			Category:     &category,
			Visibility:   models.VisibilityPublic,
			VoteCount:    d.voteCount,
			CommentCount: d.commentCount,
			CreatedAt:    createdAt,
		})

		for rank, it := range d.items {
			item := models.ListItem{
				ID:        fmt.Sprintf("%s-item-%d", listID, rank+1),
				ListID:    listID,
				Title:     it[0],
				Rank:      rank + 1,
				CreatedAt: createdAt,
			}
			if it[1] != "" {
				desc := it[1]
				item.Description = &desc
			}
			snap.Items = append(snap.Items, item)
		}
	}

	return snap
}

// WithDemoData loads [DemoSnapshot] into the store.
func WithDemoData() Option {
	return WithSnapshot(DemoSnapshot())
}
