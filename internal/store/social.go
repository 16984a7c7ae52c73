package store

import (
	"fmt"
	"strings"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

// ToggleVote adds the user's vote to a list, or removes it when already present.
func (s *Store) ToggleVote(listID, userID string) (models.VoteState, error) {
	if userID == "" {
		return models.VoteState{}, fmt.Errorf("%w: user id is required to vote", shared.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[listID]
	if !ok {
		return models.VoteState{}, fmt.Errorf("%w: %s", shared.ErrListNotFound, listID)
	}

	byUser := s.votes[listID]
	if byUser == nil {
		byUser = make(map[string]models.Vote)
		s.votes[listID] = byUser
	}

	_, voted := byUser[userID]
	if voted {
		delete(byUser, userID)
		list.VoteCount = max(list.VoteCount-1, 0)
	} else {
		now := s.now()
		byUser[userID] = models.Vote{
			ID:        shared.TimeID("vote", now),
			ListID:    listID,
			UserID:    userID,
			CreatedAt: now,
		}
		list.VoteCount++
	}

	return models.VoteState{ListID: listID, Voted: !voted, VoteCount: list.VoteCount}, nil
}

// HasVoted reports whether userID currently has a vote on the list.
func (s *Store) HasVoted(listID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.lists[listID]; !ok {
		return false, fmt.Errorf("%w: %s", shared.ErrListNotFound, listID)
	}
	_, voted := s.votes[listID][userID]
	return voted, nil
}

// AddComment appends a comment to a list. The username comes from the author's profile, falling back to the user id.
func (s *Store) AddComment(listID, userID, content string) (models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, shared.EmptyField("content", "Please write a comment")
	}
	if userID == "" {
		return models.Comment{}, fmt.Errorf("%w: user id is required to comment", shared.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[listID]
	if !ok {
		return models.Comment{}, fmt.Errorf("%w: %s", shared.ErrListNotFound, listID)
	}

	username := userID
	if p, ok := s.profiles[userID]; ok && p.Username != "" {
		username = p.Username
	}

	now := s.now()
	c := models.Comment{
		ID:        shared.TimeID("comment", now),
		ListID:    listID,
		UserID:    userID,
		Username:  username,
		Content:   content,
		CreatedAt: now,
	}
	s.comments[listID] = append(s.comments[listID], c)
	list.CommentCount++

	return c, nil
}

// ListComments returns the comments of a list, oldest first.
func (s *Store) ListComments(listID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.lists[listID]; !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrListNotFound, listID)
	}
	return append([]models.Comment{}, s.comments[listID]...), nil
}
