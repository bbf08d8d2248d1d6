package models

import "time"

// PostTitleLength is the number of characters of a post's text used as its title.
const PostTitleLength = 30

// Post is a unit of content written by an author, optionally filed under a group.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group"`
}

// Title returns the first PostTitleLength characters of the text.
func (p Post) Title() string {
	runes := []rune(p.Text)
	if len(runes) <= PostTitleLength {
		return p.Text
	}
	return string(runes[:PostTitleLength])
}

// GroupOrNil returns the post's group, or nil when it has none.
func (p Post) GroupOrNil() *Group {
	if p.GroupID == nil {
		return nil
	}
	return p.Group
}
