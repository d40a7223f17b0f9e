package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RecipeID  uuid.UUID `db:"recipe_id" json:"recipe_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	AuthorFullName *string `db:"author_full_name" json:"-"`
	AuthorUsername *string `db:"author_username" json:"-"`
}

func (c *Comment) AuthorName() string {
	return authorName(c.AuthorFullName, c.AuthorUsername)
}
