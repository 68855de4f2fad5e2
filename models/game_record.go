// models/game_record.go
package models

import "time"

// GameRecord is the row written by the Postgres catalog mirror.
// The mirror is write-only; the in-memory store stays authoritative.
// Rows are keyed by store position because an update may reuse an id.
type GameRecord struct {
	Position    int    `gorm:"primaryKey;autoIncrement:false"`
	GameID      uint64 `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Rating      uint8  `gorm:"not null"`
	Genre       string `gorm:"not null;index"`
	Description *string
	ReleaseDate time.Time `gorm:"not null"`
	SnapshotAt  time.Time `gorm:"not null"`
}

func (GameRecord) TableName() string {
	return "game_records"
}

// NewGameRecord maps a game at the given store position to a mirror row.
func NewGameRecord(g Game, position int, snapshotAt time.Time) GameRecord {
	return GameRecord{
		GameID:      g.ID,
		Position:    position,
		Title:       g.Title,
		Rating:      g.Rating,
		Genre:       string(g.Genre),
		Description: g.Description,
		ReleaseDate: g.ReleaseDate.Time,
		SnapshotAt:  snapshotAt,
	}
}
