package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"devconnector/internal/database"
	dbpostgres "devconnector/internal/database/postgres"
	"devconnector/internal/domain/profile"
	"devconnector/internal/domain/user"

	"github.com/google/uuid"
)

const profileSelect = `
SELECT p.id, p.user_id, COALESCE(u.name, ''), COALESCE(u.avatar, ''),
       COALESCE(p.company, ''), COALESCE(p.location, ''), COALESCE(p.website, ''), COALESCE(p.bio, ''),
       p.status, p.skills, COALESCE(p.githubusername, ''),
       p.social, p.experience, p.education, p.created_at
FROM profiles p
LEFT JOIN users u ON u.id = p.user_id`

// Sub-entry sequences live in these JSONB columns.
const (
	columnExperience = "experience"
	columnEducation  = "education"
)

type ProfileRepository struct {
	db database.DB
}

func NewProfileRepository(db database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, profileSelect+` WHERE p.user_id = $1`, userID))
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx, profileSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
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

func (r *ProfileRepository) Upsert(ctx context.Context, userID uuid.UUID, f profile.Fields) (profile.Profile, error) {
	if !f.HasRequired() {
		return profile.Profile{}, fmt.Errorf("upsert profile: status and skills are required")
	}
	social, err := json.Marshal(f.Social.Map())
	if err != nil {
		return profile.Profile{}, err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, company, location, website, bio, status, skills, githubusername, social)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb)
		 ON CONFLICT (user_id) DO UPDATE SET
		   company = COALESCE(EXCLUDED.company, profiles.company),
		   location = COALESCE(EXCLUDED.location, profiles.location),
		   website = COALESCE(EXCLUDED.website, profiles.website),
		   bio = COALESCE(EXCLUDED.bio, profiles.bio),
		   status = EXCLUDED.status,
		   skills = EXCLUDED.skills,
		   githubusername = COALESCE(EXCLUDED.githubusername, profiles.githubusername),
		   social = profiles.social || EXCLUDED.social,
		   updated_at = now()`,
		uuid.New(), userID, f.Company, f.Location, f.Website, f.Bio, f.Status, f.Skills, f.GitHubUsername, string(social),
	)
	if err != nil {
		if dbpostgres.IsForeignKeyViolation(err) {
			return profile.Profile{}, user.ErrNotFound
		}
		return profile.Profile{}, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *ProfileRepository) Update(ctx context.Context, userID uuid.UUID, f profile.Fields) (profile.Profile, error) {
	social, err := json.Marshal(f.Social.Map())
	if err != nil {
		return profile.Profile{}, err
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE profiles SET
		   company = COALESCE($2, company),
		   location = COALESCE($3, location),
		   website = COALESCE($4, website),
		   bio = COALESCE($5, bio),
		   status = COALESCE($6, status),
		   skills = COALESCE($7, skills),
		   githubusername = COALESCE($8, githubusername),
		   social = social || $9::jsonb,
		   updated_at = now()
		 WHERE user_id = $1`,
		userID, f.Company, f.Location, f.Website, f.Bio, f.Status, f.Skills, f.GitHubUsername, string(social),
	)
	if err != nil {
		return profile.Profile{}, err
	}
	if affected == 0 {
		return profile.Profile{}, profile.ErrNotFound
	}
	return r.GetByUserID(ctx, userID)
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

func (r *ProfileRepository) PrependExperience(ctx context.Context, userID uuid.UUID, e profile.Experience) (profile.Profile, error) {
	return r.prepend(ctx, columnExperience, userID, e)
}

func (r *ProfileRepository) RemoveExperience(ctx context.Context, userID uuid.UUID, id string) (profile.Profile, error) {
	return r.remove(ctx, columnExperience, userID, id)
}

func (r *ProfileRepository) PrependEducation(ctx context.Context, userID uuid.UUID, e profile.Education) (profile.Profile, error) {
	return r.prepend(ctx, columnEducation, userID, e)
}

func (r *ProfileRepository) RemoveEducation(ctx context.Context, userID uuid.UUID, id string) (profile.Profile, error) {
	return r.remove(ctx, columnEducation, userID, id)
}

func (r *ProfileRepository) prepend(ctx context.Context, column string, userID uuid.UUID, entry any) (profile.Profile, error) {
	b, err := json.Marshal(entry)
	if err != nil {
		return profile.Profile{}, err
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE profiles SET `+column+` = jsonb_build_array($2::jsonb) || `+column+`, updated_at = now()
		 WHERE user_id = $1`,
		userID, string(b),
	)
	if err != nil {
		return profile.Profile{}, err
	}
	if affected == 0 {
		return profile.Profile{}, profile.ErrNotFound
	}
	return r.GetByUserID(ctx, userID)
}

func (r *ProfileRepository) remove(ctx context.Context, column string, userID uuid.UUID, id string) (profile.Profile, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE profiles SET `+column+` = COALESCE((
		   SELECT jsonb_agg(e ORDER BY ord)
		   FROM jsonb_array_elements(`+column+`) WITH ORDINALITY AS t(e, ord)
		   WHERE e->>'id' <> $2::text
		 ), '[]'::jsonb), updated_at = now()
		 WHERE user_id = $1 AND `+column+` @> jsonb_build_array(jsonb_build_object('id', $2::text))`,
		userID, id,
	)
	if err != nil {
		return profile.Profile{}, err
	}

	p, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}
	if affected == 0 {
		return profile.Profile{}, profile.ErrEntryNotFound
	}
	return p, nil
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var (
		p                             profile.Profile
		social, experience, education []byte
	)
	err := row.Scan(
		&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar,
		&p.Company, &p.Location, &p.Website, &p.Bio,
		&p.Status, &p.Skills, &p.GitHubUsername,
		&social, &experience, &education, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}

	if err := unmarshalJSONB(social, &p.Social); err != nil {
		return profile.Profile{}, fmt.Errorf("decode social: %w", err)
	}
	if err := unmarshalJSONB(experience, &p.Experience); err != nil {
		return profile.Profile{}, fmt.Errorf("decode experience: %w", err)
	}
	if err := unmarshalJSONB(education, &p.Education); err != nil {
		return profile.Profile{}, fmt.Errorf("decode education: %w", err)
	}
	return p, nil
}

func unmarshalJSONB(b []byte, out any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

var _ profile.Repository = (*ProfileRepository)(nil)
