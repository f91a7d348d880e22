package services

import "github.com/mosaicnet/interlink/pkg/internal/models"

// CanViewPost decides whether a viewer may read a post. Anonymous viewers
// are represented by a nil id: they can read public posts and nothing else.
func CanViewPost(viewerID *uint, post models.Post) bool {
	if viewerID != nil && *viewerID == post.AuthorID {
		return true
	}

	switch post.Visibility {
	case models.PostVisibilityPublic:
		return true
	case models.PostVisibilityFollowers:
		if viewerID == nil {
			return false
		}
		following, err := Follows.IsFollowing(*viewerID, post.AuthorID)
		if err != nil {
			return false
		}
		return following
	default:
		return false
	}
}
