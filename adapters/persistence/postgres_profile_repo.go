package persistence

import (
	"context"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
	"github.com/khoavn/devfolio/pkg/logger"
)

// postgresProfileRepo persists the aggregate as one root row plus two child
// tables. Value objects owned by the root (location, social links) are
// inlined as columns; tag collections are text[] columns.
type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const pgUniqueViolation = "23505"

var profileColumns = []string{
	"id", "first_name", "last_name", "role", "summary", "avatar_url", "phone",
	"open_to_work", "years_of_experience", "verified", "email", "website",
	"city", "country", "linked_in", "git_hub", "twitter", "telegram",
	"skills", "created_at", "updated_at",
}

const selectProfileSQL = `
	SELECT id, first_name, last_name, role, summary, avatar_url, phone,
	       open_to_work, years_of_experience, verified, email, website,
	       city, country, linked_in, git_hub, twitter, telegram,
	       skills, created_at, updated_at
	FROM developer_profiles`

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	rec := newProfileRecord(p)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to begin create transaction", err)
	}
	defer tx.Rollback(ctx)

	insertSQL := `
		INSERT INTO developer_profiles (
			id, first_name, last_name, role, summary, avatar_url, phone,
			open_to_work, years_of_experience, verified, email, website,
			city, country, linked_in, git_hub, twitter, telegram,
			skills, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err = tx.Exec(ctx, insertSQL, profileRowArgs(rec)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflict("profile", "id", rec.ID)
		}
		return nil, apperror.NewInternal("failed to insert profile", err)
	}

	for _, proj := range rec.Projects {
		if err := insertProjectRow(ctx, tx, rec.ID, proj); err != nil {
			return nil, err
		}
	}
	for _, exp := range rec.WorkExperience {
		if err := insertWorkExperienceRow(ctx, tx, rec.ID, exp); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewInternal("failed to commit create transaction", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.DeveloperProfile, error) {
	row := r.db.QueryRow(ctx, selectProfileSQL+` WHERE id = $1`, id)
	rec, err := scanProfileRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to fetch profile", err)
	}

	if err := r.attachChildren(ctx, []*profileRecord{rec}); err != nil {
		return nil, err
	}

	p, err := rec.toDomain()
	if err != nil {
		return nil, apperror.NewInternal("failed to map stored profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) GetAll(ctx context.Context) ([]*profile.DeveloperProfile, error) {
	rows, err := r.db.Query(ctx, selectProfileSQL+` ORDER BY id`)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	recs, err := scanProfileRows(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachChildren(ctx, recs); err != nil {
		return nil, err
	}
	return recordsToDomain(recs)
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	rec := newProfileRecord(p)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to begin update transaction", err)
	}
	defer tx.Rollback(ctx)

	updateSQL := `
		UPDATE developer_profiles SET
			first_name = $2, last_name = $3, role = $4, summary = $5,
			avatar_url = $6, phone = $7, open_to_work = $8,
			years_of_experience = $9, verified = $10, email = $11,
			website = $12, city = $13, country = $14, linked_in = $15,
			git_hub = $16, twitter = $17, telegram = $18, skills = $19,
			created_at = $20, updated_at = $21
		WHERE id = $1`

	cmdTag, err := tx.Exec(ctx, updateSQL, profileRowArgs(rec)...)
	if err != nil {
		return nil, apperror.NewInternal("failed to update profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Root is gone; the whole upsert-by-identity reports absent.
		return nil, nil
	}

	if err := r.syncProjects(ctx, tx, rec); err != nil {
		return nil, err
	}
	if err := r.syncWorkExperiences(ctx, tx, rec); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewInternal("failed to commit update transaction", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	// Child rows go with the root via ON DELETE CASCADE.
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM developer_profiles WHERE id = $1`, id)
	if err != nil {
		return false, apperror.NewInternal("failed to delete profile", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *postgresProfileRepo) SearchCatalog(ctx context.Context, q profile.CatalogQuery) (*profile.CatalogResult, error) {
	if err := q.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("invalid catalog query", err)
	}
	preds := catalogPredicates(q)

	countBuilder := psqlProfile.Select("COUNT(*)").From("developer_profiles")
	for _, pred := range preds {
		countBuilder = countBuilder.Where(pred)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build catalog count query", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, apperror.NewInternal("failed to count catalog matches", err)
	}

	result := &profile.CatalogResult{
		Items:      []*profile.DeveloperProfile{},
		TotalCount: total,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	}
	if total == 0 {
		return result, nil
	}

	pageBuilder := psqlProfile.Select(profileColumns...).From("developer_profiles")
	for _, pred := range preds {
		pageBuilder = pageBuilder.Where(pred)
	}
	pageBuilder = pageBuilder.
		OrderBy(catalogOrderBy(q)...).
		Limit(uint64(q.PageSize)).
		Offset(uint64(q.Offset()))

	pageSQL, pageArgs, err := pageBuilder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build catalog page query", err)
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query catalog page", err)
	}
	recs, err := scanProfileRows(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachChildren(ctx, recs); err != nil {
		return nil, err
	}
	items, err := recordsToDomain(recs)
	if err != nil {
		return nil, err
	}
	result.Items = items
	return result, nil
}

// catalogPredicates translates the backend-neutral filters into SQL
// predicates. Semantics mirror the document adapter exactly: substring match
// on either name part, exact boolean/level matches, and skills as a
// contains-all match against the array column.
func catalogPredicates(q profile.CatalogQuery) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if s := strings.TrimSpace(q.Search); s != "" {
		pattern := "%" + likeEscape(s) + "%"
		preds = append(preds, sq.Or{
			sq.Expr(`first_name ILIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`last_name ILIKE ? ESCAPE '\'`, pattern),
		})
	}
	if q.OpenToWork != nil {
		preds = append(preds, sq.Eq{"open_to_work": *q.OpenToWork})
	}
	if q.Verification != nil {
		preds = append(preds, sq.Eq{"verified": int(*q.Verification)})
	}
	if len(q.Skills) > 0 {
		preds = append(preds, sq.Expr("skills @> ?", q.Skills))
	}
	return preds
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeEscape neutralizes LIKE wildcards in a search term. The document
// adapter quotes regex metacharacters the same way, so a term like "go_her"
// matches literally on both backends.
func likeEscape(s string) string {
	return likeEscaper.Replace(s)
}

// catalogOrderBy builds the ORDER BY keys. The trailing id key keeps the
// total order deterministic so pagination never shuffles ties.
func catalogOrderBy(q profile.CatalogQuery) []string {
	dir := "ASC"
	if q.SortOrder == profile.SortDesc {
		dir = "DESC"
	}
	switch q.SortField {
	case profile.SortByID:
		return []string{"id " + dir}
	case profile.SortByUpdatedAt:
		return []string{"updated_at " + dir, "id " + dir}
	default:
		return []string{"last_name " + dir, "first_name " + dir, "id " + dir}
	}
}

// syncProjects reconciles the stored child rows with the incoming aggregate
// by primary key value: delete orphans, overwrite matches, insert the new.
// No identity map survives across calls; re-attachment is purely by id.
func (r *postgresProfileRepo) syncProjects(ctx context.Context, tx pgx.Tx, rec *profileRecord) error {
	existing, err := childIDs(ctx, tx, `SELECT id FROM projects WHERE developer_profile_id = $1`, rec.ID)
	if err != nil {
		return apperror.NewInternal("failed to list existing projects", err)
	}

	incoming := make(map[string]struct{}, len(rec.Projects))
	for _, proj := range rec.Projects {
		incoming[proj.ID] = struct{}{}
	}

	var orphans []string
	for id := range existing {
		if _, ok := incoming[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = ANY($1::uuid[])`, orphans); err != nil {
			return apperror.NewInternal("failed to delete removed projects", err)
		}
	}

	for _, proj := range rec.Projects {
		if _, ok := existing[proj.ID]; ok {
			updateSQL := `
				UPDATE projects SET name = $2, description = $3, icon_url = $4,
					link_url = $5, tech_stack = $6
				WHERE id = $1`
			if _, err := tx.Exec(ctx, updateSQL, proj.ID, proj.Name, proj.Description, proj.IconURL, proj.LinkURL, proj.TechStack); err != nil {
				return apperror.NewInternal("failed to update project", err)
			}
			continue
		}
		if err := insertProjectRow(ctx, tx, rec.ID, proj); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresProfileRepo) syncWorkExperiences(ctx context.Context, tx pgx.Tx, rec *profileRecord) error {
	existing, err := childIDs(ctx, tx, `SELECT id FROM work_experiences WHERE developer_profile_id = $1`, rec.ID)
	if err != nil {
		return apperror.NewInternal("failed to list existing work experiences", err)
	}

	incoming := make(map[string]struct{}, len(rec.WorkExperience))
	for _, exp := range rec.WorkExperience {
		incoming[exp.ID] = struct{}{}
	}

	var orphans []string
	for id := range existing {
		if _, ok := incoming[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM work_experiences WHERE id = ANY($1::uuid[])`, orphans); err != nil {
			return apperror.NewInternal("failed to delete removed work experiences", err)
		}
	}

	for _, exp := range rec.WorkExperience {
		if _, ok := existing[exp.ID]; ok {
			updateSQL := `
				UPDATE work_experiences SET company = $2, city = $3, country = $4,
					role = $5, description = $6, start_date = $7, end_date = $8,
					tech_stack = $9
				WHERE id = $1`
			city, country := splitLocation(exp.Location)
			if _, err := tx.Exec(ctx, updateSQL, exp.ID, exp.Company, city, country, exp.Role, exp.Description, exp.StartDate, exp.EndDate, exp.TechStack); err != nil {
				return apperror.NewInternal("failed to update work experience", err)
			}
			continue
		}
		if err := insertWorkExperienceRow(ctx, tx, rec.ID, exp); err != nil {
			return err
		}
	}
	return nil
}

func insertProjectRow(ctx context.Context, tx pgx.Tx, profileID string, proj projectRecord) error {
	insertSQL := `
		INSERT INTO projects (id, developer_profile_id, name, description, icon_url, link_url, tech_stack)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.Exec(ctx, insertSQL, proj.ID, profileID, proj.Name, proj.Description, proj.IconURL, proj.LinkURL, proj.TechStack); err != nil {
		return apperror.NewInternal("failed to insert project", err)
	}
	return nil
}

func insertWorkExperienceRow(ctx context.Context, tx pgx.Tx, profileID string, exp workExperienceRecord) error {
	insertSQL := `
		INSERT INTO work_experiences (id, developer_profile_id, company, city, country, role, description, start_date, end_date, tech_stack)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	city, country := splitLocation(exp.Location)
	if _, err := tx.Exec(ctx, insertSQL, exp.ID, profileID, exp.Company, city, country, exp.Role, exp.Description, exp.StartDate, exp.EndDate, exp.TechStack); err != nil {
		return apperror.NewInternal("failed to insert work experience", err)
	}
	return nil
}

func childIDs(ctx context.Context, tx pgx.Tx, query, profileID string) (map[string]struct{}, error) {
	rows, err := tx.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id.String()] = struct{}{}
	}
	return ids, rows.Err()
}

// attachChildren loads both child tables for the given roots in two queries
// and distributes the rows by foreign key. Reads order children by id so
// repeated loads are deterministic.
func (r *postgresProfileRepo) attachChildren(ctx context.Context, recs []*profileRecord) error {
	if len(recs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(recs))
	byID := make(map[string]*profileRecord, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
		byID[rec.ID] = rec
	}

	if err := r.loadProjects(ctx, ids, byID); err != nil {
		return err
	}
	return r.loadWorkExperiences(ctx, ids, byID)
}

func (r *postgresProfileRepo) loadProjects(ctx context.Context, ids []string, byID map[string]*profileRecord) error {
	query := `
		SELECT id, developer_profile_id, name, description, icon_url, link_url, tech_stack
		FROM projects WHERE developer_profile_id = ANY($1::uuid[]) ORDER BY id`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return apperror.NewInternal("failed to query projects", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec projectRecord
		var id, ownerID uuid.UUID
		if err := rows.Scan(&id, &ownerID, &rec.Name, &rec.Description, &rec.IconURL, &rec.LinkURL, &rec.TechStack); err != nil {
			return apperror.NewInternal("failed to scan project row", err)
		}
		rec.ID = id.String()
		if owner, ok := byID[ownerID.String()]; ok {
			owner.Projects = append(owner.Projects, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return apperror.NewInternal("error iterating project rows", err)
	}
	return nil
}

func (r *postgresProfileRepo) loadWorkExperiences(ctx context.Context, ids []string, byID map[string]*profileRecord) error {
	query := `
		SELECT id, developer_profile_id, company, city, country, role, description, start_date, end_date, tech_stack
		FROM work_experiences WHERE developer_profile_id = ANY($1::uuid[]) ORDER BY id`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return apperror.NewInternal("failed to query work experiences", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec workExperienceRecord
		var id, ownerID uuid.UUID
		var city, country *string
		if err := rows.Scan(&id, &ownerID, &rec.Company, &city, &country, &rec.Role, &rec.Description, &rec.StartDate, &rec.EndDate, &rec.TechStack); err != nil {
			return apperror.NewInternal("failed to scan work experience row", err)
		}
		rec.ID = id.String()
		if city != nil || country != nil {
			rec.Location = &locationRecord{City: city, Country: country}
		}
		if owner, ok := byID[ownerID.String()]; ok {
			owner.WorkExperience = append(owner.WorkExperience, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return apperror.NewInternal("error iterating work experience rows", err)
	}
	return nil
}

func scanProfileRow(row pgx.Row) (*profileRecord, error) {
	var rec profileRecord
	var id uuid.UUID
	var city, country, linkedIn, gitHub, twitter, telegram *string

	err := row.Scan(
		&id, &rec.FirstName, &rec.LastName, &rec.Role, &rec.Summary,
		&rec.AvatarURL, &rec.Phone, &rec.OpenToWork, &rec.YearsOfExperience,
		&rec.VerificationStatus, &rec.Email, &rec.Website,
		&city, &country, &linkedIn, &gitHub, &twitter, &telegram,
		&rec.Skills, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.ID = id.String()
	if city != nil || country != nil {
		rec.Location = &locationRecord{City: city, Country: country}
	}
	if linkedIn != nil || gitHub != nil || twitter != nil || telegram != nil {
		rec.SocialLinks = &socialLinksRecord{LinkedIn: linkedIn, GitHub: gitHub, Twitter: twitter, Telegram: telegram}
	}
	rec.Projects = []projectRecord{}
	rec.WorkExperience = []workExperienceRecord{}
	return &rec, nil
}

func scanProfileRows(rows pgx.Rows) ([]*profileRecord, error) {
	defer rows.Close()
	recs := make([]*profileRecord, 0)
	for rows.Next() {
		rec, err := scanProfileRow(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan profile row", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return recs, nil
}

func recordsToDomain(recs []*profileRecord) ([]*profile.DeveloperProfile, error) {
	out := make([]*profile.DeveloperProfile, 0, len(recs))
	for _, rec := range recs {
		p, err := rec.toDomain()
		if err != nil {
			return nil, apperror.NewInternal("failed to map stored profile", err)
		}
		out = append(out, p)
	}
	return out, nil
}

// profileRowArgs orders the record's flattened fields to match both the
// INSERT column list and the UPDATE SET list.
func profileRowArgs(rec *profileRecord) []any {
	city, country := splitLocation(rec.Location)
	var linkedIn, gitHub, twitter, telegram *string
	if rec.SocialLinks != nil {
		linkedIn = rec.SocialLinks.LinkedIn
		gitHub = rec.SocialLinks.GitHub
		twitter = rec.SocialLinks.Twitter
		telegram = rec.SocialLinks.Telegram
	}
	return []any{
		rec.ID, rec.FirstName, rec.LastName, rec.Role, rec.Summary,
		rec.AvatarURL, rec.Phone, rec.OpenToWork, rec.YearsOfExperience,
		rec.VerificationStatus, rec.Email, rec.Website,
		city, country, linkedIn, gitHub, twitter, telegram,
		rec.Skills, rec.CreatedAt, rec.UpdatedAt,
	}
}

func splitLocation(loc *locationRecord) (city, country *string) {
	if loc == nil {
		return nil, nil
	}
	return loc.City, loc.Country
}
