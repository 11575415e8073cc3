package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"devconnector/internal/database"
	dbpostgres "devconnector/internal/database/postgres"
	"devconnector/internal/domain/post"
	"devconnector/internal/domain/user"

	"github.com/google/uuid"
)

const postColumns = `id, user_id, text, name, avatar, likes, comments, created_at`

type PostRepository struct {
	db database.DB
}

func NewPostRepository(db database.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p post.Post) (post.Post, error) {
	likes, comments, err := encodeReactions(p)
	if err != nil {
		return post.Post{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO posts (id, user_id, text, name, avatar, likes, comments)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb)
		 RETURNING `+postColumns,
		p.ID, p.User, p.Text, p.Name, p.Avatar, likes, comments,
	)
	created, err := scanPost(row)
	if err != nil {
		if dbpostgres.IsForeignKeyViolation(err) {
			return post.Post{}, user.ErrNotFound
		}
		return post.Post{}, err
	}
	return created, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (post.Post, error) {
	return scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

func (r *PostRepository) List(ctx context.Context) ([]post.Post, error) {
	rows, err := r.db.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]post.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE user_id = $1`, userID)
	return err
}

func (r *PostRepository) SaveReactions(ctx context.Context, p post.Post) error {
	likes, comments, err := encodeReactions(p)
	if err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE posts SET likes = $2::jsonb, comments = $3::jsonb WHERE id = $1`,
		p.ID, likes, comments,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return post.ErrNotFound
	}
	return nil
}

func encodeReactions(p post.Post) (string, string, error) {
	likes := p.Likes
	if likes == nil {
		likes = []post.Like{}
	}
	comments := p.Comments
	if comments == nil {
		comments = []post.Comment{}
	}

	lb, err := json.Marshal(likes)
	if err != nil {
		return "", "", err
	}
	cb, err := json.Marshal(comments)
	if err != nil {
		return "", "", err
	}
	return string(lb), string(cb), nil
}

func scanPost(row database.Row) (post.Post, error) {
	var (
		p               post.Post
		likes, comments []byte
	)
	if err := row.Scan(&p.ID, &p.User, &p.Text, &p.Name, &p.Avatar, &likes, &comments, &p.CreatedAt); err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, err
	}

	if err := unmarshalJSONB(likes, &p.Likes); err != nil {
		return post.Post{}, fmt.Errorf("decode likes: %w", err)
	}
	if err := unmarshalJSONB(comments, &p.Comments); err != nil {
		return post.Post{}, fmt.Errorf("decode comments: %w", err)
	}
	return p, nil
}

var _ post.Repository = (*PostRepository)(nil)
