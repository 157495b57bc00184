package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bwa/internal/domain"
	"bwa/internal/ports"
)

var _ ports.Store = (*DB)(nil)

func findWebsite(ctx context.Context, q querier, hostname string) (domain.Website, error) {
	var w domain.Website
	err := q.QueryRow(ctx, `
        SELECT id, hostname, is_masjid, created_at FROM websites WHERE hostname = $1
    `, hostname).Scan(&w.ID, &w.Hostname, &w.IsMasjid, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Website{}, ports.ErrWebsiteNotFound
	}
	w.CreatedAt = w.CreatedAt.UTC()
	return w, err
}

func latestScan(ctx context.Context, q querier, hostname string) (domain.Interaction, bool, error) {
	b := logQuery().
		Join("websites w ON w.id = i.website_id").
		Where(sq.Eq{"w.hostname": hostname, "i.type": string(domain.InteractionScan)}).
		OrderBy("i.created_at DESC", "i.seq DESC").
		Limit(1)
	log, err := queryLog(ctx, q, b)
	if err != nil || len(log) == 0 {
		return domain.Interaction{}, false, err
	}
	return log[0], true, nil
}

func (db *DB) FindWebsite(ctx context.Context, hostname string) (domain.Website, error) {
	return findWebsite(ctx, db.Pool, hostname)
}

func (db *DB) LatestScan(ctx context.Context, hostname string) (domain.Interaction, bool, error) {
	return latestScan(ctx, db.Pool, hostname)
}

func (db *DB) Interactions(ctx context.Context, websiteID string) ([]domain.Interaction, error) {
	return queryLog(ctx, db.Pool, logQuery().
		Where(sq.Eq{"i.website_id": websiteID}).
		OrderBy("i.created_at", "i.seq"))
}

// WithinWebsite serializes writers per hostname with a transaction-scoped
// advisory lock, released on commit or rollback.
func (db *DB) WithinWebsite(ctx context.Context, hostname string, fn func(ports.WebsiteTx) error) (err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, hostname); err != nil {
		return fmt.Errorf("lock website %s: %w", hostname, err)
	}
	return fn(&websiteTx{tx: tx, hostname: hostname, clock: db.clock.Now})
}

type websiteTx struct {
	tx       pgx.Tx
	hostname string
	clock    func() time.Time
	website  *domain.Website
}

func (t *websiteTx) Now() time.Time { return t.clock().UTC() }

func (t *websiteTx) Website(ctx context.Context) (domain.Website, bool, error) {
	if t.website != nil {
		return *t.website, true, nil
	}
	w, err := findWebsite(ctx, t.tx, t.hostname)
	if errors.Is(err, ports.ErrWebsiteNotFound) {
		return domain.Website{}, false, nil
	}
	if err != nil {
		return domain.Website{}, false, err
	}
	t.website = &w
	return w, true, nil
}

func (t *websiteTx) UpsertWebsite(ctx context.Context, isMasjid bool) (domain.Website, error) {
	var w domain.Website
	err := t.tx.QueryRow(ctx, `
        INSERT INTO websites (id, hostname, is_masjid, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (hostname) DO UPDATE SET is_masjid = EXCLUDED.is_masjid
        RETURNING id, hostname, is_masjid, created_at
    `, uuid.NewString(), t.hostname, isMasjid, t.Now()).Scan(&w.ID, &w.Hostname, &w.IsMasjid, &w.CreatedAt)
	if err != nil {
		return domain.Website{}, err
	}
	w.CreatedAt = w.CreatedAt.UTC()
	t.website = &w
	return w, nil
}

func (t *websiteTx) LatestScan(ctx context.Context) (domain.Interaction, bool, error) {
	return latestScan(ctx, t.tx, t.hostname)
}

// before matches rows strictly earlier in log order than the interaction.
func before(ix domain.Interaction) sq.Sqlizer {
	return sq.Expr("(i.created_at, i.seq) < (SELECT created_at, seq FROM interactions WHERE id = ?)", ix.ID)
}

func (t *websiteTx) exists(ctx context.Context, b sq.SelectBuilder) (bool, error) {
	sqlStr, args, err := b.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}
	var ok bool
	err = t.tx.QueryRow(ctx, sqlStr, args...).Scan(&ok)
	return ok, err
}

func (t *websiteTx) ScanRecordedNewBefore(ctx context.Context, company domain.CompanyID, ix domain.Interaction) (bool, error) {
	return t.exists(ctx, psql.Select("1").
		From("interactions i").
		Join("scans s ON s.interaction_id = i.id").
		Where(sq.Eq{"i.website_id": ix.WebsiteID, "i.type": string(domain.InteractionScan)}).
		Where(sq.Expr("s.changes ->> ? = ?", string(company), string(domain.StatusNew))).
		Where(before(ix)))
}

func (t *websiteTx) PostedBefore(ctx context.Context, userID string, ix domain.Interaction) (bool, error) {
	return t.exists(ctx, psql.Select("1").
		From("interactions i").
		Where(sq.Eq{"i.website_id": ix.WebsiteID, "i.type": string(domain.InteractionPost), "i.user_id": userID}).
		Where(before(ix)))
}

func (t *websiteTx) insertInteraction(ctx context.Context, ix domain.Interaction) (domain.Interaction, error) {
	w, found, err := t.Website(ctx)
	if err != nil {
		return domain.Interaction{}, err
	}
	if !found {
		return domain.Interaction{}, ports.ErrWebsiteNotFound
	}
	ix.ID = uuid.NewString()
	ix.WebsiteID = w.ID
	ix.CreatedAt = t.Now()
	if err := ix.Validate(); err != nil {
		return domain.Interaction{}, err
	}
	_, err = t.tx.Exec(ctx, `
        INSERT INTO interactions (id, website_id, user_id, ip, type, created_at)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
    `, ix.ID, ix.WebsiteID, ix.UserID, ix.IP, string(ix.Type), ix.CreatedAt)
	return ix, err
}

func (t *websiteTx) AppendScan(ctx context.Context, in ports.NewScan) (domain.Interaction, error) {
	changes, err := changesJSON(in.Changes)
	if err != nil {
		return domain.Interaction{}, err
	}
	ix, err := t.insertInteraction(ctx, domain.Interaction{
		UserID:  in.UserID,
		IP:      in.IP,
		Type:    domain.InteractionScan,
		Payload: &domain.Scan{Changes: in.Changes},
	})
	if err != nil {
		return domain.Interaction{}, err
	}
	_, err = t.tx.Exec(ctx, `INSERT INTO scans (interaction_id, changes) VALUES ($1, $2)`, ix.ID, changes)
	return ix, err
}

func (t *websiteTx) AppendPost(ctx context.Context, in ports.NewPost) (domain.Interaction, error) {
	ix, err := t.insertInteraction(ctx, domain.Interaction{
		UserID:  in.UserID,
		IP:      in.IP,
		Type:    domain.InteractionPost,
		Payload: &domain.Post{Body: in.Body},
	})
	if err != nil {
		return domain.Interaction{}, err
	}
	_, err = t.tx.Exec(ctx, `INSERT INTO posts (interaction_id, body) VALUES ($1, $2)`, ix.ID, in.Body)
	return ix, err
}

// AppendMilestone checks for an existing milestone first; the advisory lock
// makes the check race free and milestones_once backs it up.
func (t *websiteTx) AppendMilestone(ctx context.Context, data domain.MilestoneData, trigger domain.Interaction) (domain.Interaction, bool, error) {
	raw, err := data.MarshalJSON()
	if err != nil {
		return domain.Interaction{}, false, err
	}
	var exists bool
	err = t.tx.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM milestones
            WHERE data_interaction_id = $1 AND kind = $2 AND company_id = $3
        )
    `, trigger.ID, string(data.Kind), string(data.CompanyID)).Scan(&exists)
	if err != nil || exists {
		return domain.Interaction{}, false, err
	}

	ix, err := t.insertInteraction(ctx, domain.Interaction{
		Type:    domain.InteractionMilestone,
		Payload: &domain.Milestone{Data: data, DataInteractionID: trigger.ID},
	})
	if err != nil {
		return domain.Interaction{}, false, err
	}
	_, err = t.tx.Exec(ctx, `
        INSERT INTO milestones (interaction_id, data, kind, company_id, data_interaction_id)
        VALUES ($1, $2, $3, $4, $5)
    `, ix.ID, raw, string(data.Kind), string(data.CompanyID), trigger.ID)
	if err != nil {
		return domain.Interaction{}, false, err
	}
	return ix, true, nil
}
