package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/fivhter/internal/formatter"
	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

const (
	defaultWorkers   = 5
	maxWorkers       = 10
	defaultRateLimit = 5.0
	manifestName     = "export_manifest.json"
)

// ListSource fetches hydrated lists. [backend.Client] satisfies it.
type ListSource interface {
	GetList(ctx context.Context, id string) shared.Result[models.TopFiveList]
}

// BulkExportOpts contains configuration for bulk list exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: fivhter_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5, at most 10)
	RateLimit  float64 // Fetches per second (default: 5)
}

// BulkExportResult summarizes a bulk export and is written as the manifest.
type BulkExportResult struct {
	Format            string             `json:"format"`
	TotalLists        int                `json:"total_lists"`
	SuccessfulExports int                `json:"successful_exports"`
	FailedExports     int                `json:"failed_exports"`
	OutputDirectory   string             `json:"output_directory"`
	ManifestPath      string             `json:"-"`
	ExportedAt        time.Time          `json:"exported_at"`
	Results           []ListExportResult `json:"results"`
}

// ListExportResult is the outcome for one list.
type ListExportResult struct {
	ListID  string   `json:"list_id"`
	Title   string   `json:"title"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type exportJob struct {
	id   string
	list models.TopFiveList
}

// Exporter writes lists fetched from a [ListSource] to disk.
type Exporter struct {
	source ListSource
	now    func() time.Time
}

// NewExporter creates an Exporter over src.
func NewExporter(src ListSource) *Exporter {
	return &Exporter{source: src, now: shared.Now}
}

// BulkExport exports the lists named by ids concurrently with rate limiting and progress tracking.
//
// Lists that cannot be fetched or written are recorded as failures. The manifest is written
// once every list has been handled; a cancelled context skips it and returns the partial result.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: list source not initialized", shared.ErrInvalidArgument)
	}

	switch opts.Format {
	case "":
		opts.Format = "json"
	case "json", "csv", "markdown", "txt":
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("fivhter_export_%d", e.now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	opts.NumWorkers = min(opts.NumWorkers, maxWorkers)
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		Format:          opts.Format,
		TotalLists:      len(ids),
		OutputDirectory: opts.OutputDir,
		ExportedAt:      e.now(),
		Results:         make([]ListExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(ids))
	results := make(chan ListExportResult, len(ids))

	// results is closed once the producer and every worker are gone, since both send on it.
	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, id := range ids {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			sendProgress(prog, fetchingListUpdate(i+1, len(ids), id))

			res := e.source.GetList(ctx, id)
			if ctx.Err() != nil {
				return
			}

			list, ok := res.Unwrap()
			if !ok {
				failed := ListExportResult{
					ListID: id,
					Title:  fmt.Sprintf("Unknown (%s)", id),
					Error:  "failed to fetch list: " + res.Error.Message,
				}
				select {
				case results <- failed:
				case <-ctx.Done():
					return
				}
				continue
			}

			select {
			case jobs <- exportJob{id: id, list: list}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.Title, len(res.Files)))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(ids), res.Title, errors.New(res.Error)))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export cancelled: %w", err)
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker exports lists from the jobs channel until it closes or ctx is done.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- ListExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		select {
		case results <- exportSingleList(job, opts):
		case <-ctx.Done():
			return
		}
	}
}

// exportSingleList writes one list in opts.Format under opts.OutputDir.
func exportSingleList(j exportJob, opts BulkExportOpts) ListExportResult {
	result := ListExportResult{
		ListID: j.id,
		Title:  j.list.Title,
		Files:  []string{},
	}

	fail := func(err error) ListExportResult {
		result.Files = nil
		result.Error = err.Error()
		return result
	}

	switch opts.Format {
	case "csv":
		csvRes, err := formatter.WriteCSVExport(j.list, filepath.Join(opts.OutputDir, j.list.ID))
		if err != nil {
			return fail(fmt.Errorf("CSV export failed: %w", err))
		}
		result.Files = []string{csvRes.ItemsFile, csvRes.MetadataFile}

	case "markdown":
		path, err := formatter.WriteMarkdownExport(j.list, filepath.Join(opts.OutputDir, j.list.ID))
		if err != nil {
			return fail(fmt.Errorf("markdown export failed: %w", err))
		}
		result.Files = []string{path}

	case "txt":
		path, err := formatter.WriteTextExport(j.list, filepath.Join(opts.OutputDir, j.list.ID+".txt"))
		if err != nil {
			return fail(fmt.Errorf("text export failed: %w", err))
		}
		result.Files = []string{path}

	default:
		jsonPath := filepath.Join(opts.OutputDir, j.list.ID+".json")
		data, err := shared.MarshalJSON(j.list, true)
		if err != nil {
			return fail(fmt.Errorf("JSON marshal failed: %w", err))
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			return fail(fmt.Errorf("JSON write failed: %w", err))
		}
		result.Files = []string{jsonPath}
	}

	result.Success = true
	return result
}
