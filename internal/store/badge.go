package store

import (
	"database/sql"
	"fmt"

	"github.com/jklemm/hearthside/internal/model"
)

type BadgeStore struct {
	db *sql.DB
}

func NewBadgeStore(db *sql.DB) *BadgeStore {
	return &BadgeStore{db: db}
}

const badgeCols = `id, from_user_id, to_user_id, kind, message, created_at`

func (s *BadgeStore) Give(fromUserID, toUserID int64, kind, message string) (*model.Badge, error) {
	result, err := s.db.Exec(
		`INSERT INTO badges (from_user_id, to_user_id, kind, message) VALUES (?, ?, ?, ?)`,
		fromUserID, toUserID, kind, message,
	)
	if err != nil {
		return nil, fmt.Errorf("insert badge: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	var b model.Badge
	err = s.db.QueryRow(
		`SELECT `+badgeCols+` FROM badges WHERE id = ?`, id,
	).Scan(&b.ID, &b.FromUserID, &b.ToUserID, &b.Kind, &b.Message, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get badge: %w", err)
	}
	return &b, nil
}

func (s *BadgeStore) ListReceived(userID int64) ([]model.Badge, error) {
	return s.list(`to_user_id`, userID)
}

func (s *BadgeStore) ListGiven(userID int64) ([]model.Badge, error) {
	return s.list(`from_user_id`, userID)
}

func (s *BadgeStore) list(column string, userID int64) ([]model.Badge, error) {
	rows, err := s.db.Query(
		`SELECT `+badgeCols+` FROM badges WHERE `+column+` = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	var badges []model.Badge
	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.FromUserID, &b.ToUserID, &b.Kind, &b.Message, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}
