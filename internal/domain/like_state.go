package domain

// LikeState is the caller-visible like status of one recipe: whether the
// current user likes it and how many users do. It is derived, never stored.
type LikeState struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

// LikedBy returns the state after the current user's favorite was stored.
func (s LikeState) LikedBy() LikeState {
	return LikeState{Liked: true, Count: clampCount(s.Count) + 1}
}

// UnlikedBy returns the state after the current user's favorite was removed.
func (s LikeState) UnlikedBy() LikeState {
	return LikeState{Liked: false, Count: clampCount(s.Count - 1)}
}

// Collapse keeps the count and forces the liked flag. It is used when the
// store disagrees with the caller about whether the row exists.
func (s LikeState) Collapse(liked bool) LikeState {
	return LikeState{Liked: liked, Count: clampCount(s.Count)}
}

// LikeStateFrom derives the state from the favorites of one recipe.
func LikeStateFrom(favorites []Favorite, user *User) LikeState {
	state := LikeState{Count: int64(len(favorites))}
	if user == nil {
		return state
	}
	for _, fav := range favorites {
		if fav.UserID == user.ID {
			state.Liked = true
			break
		}
	}
	return state
}

func clampCount(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
