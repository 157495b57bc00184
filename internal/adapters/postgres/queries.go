package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bwa/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// logQuery selects interactions with whichever child row they carry.
func logQuery() sq.SelectBuilder {
	return psql.Select(
		"i.id",
		"COALESCE(i.website_id, '')",
		"COALESCE(i.user_id, '')",
		"COALESCE(i.ip, '')",
		"i.type",
		"i.created_at",
		"s.changes",
		"p.body",
		"m.data",
		"m.data_interaction_id",
		"r.reason",
	).
		From("interactions i").
		LeftJoin("scans s ON s.interaction_id = i.id").
		LeftJoin("posts p ON p.interaction_id = i.id").
		LeftJoin("milestones m ON m.interaction_id = i.id").
		LeftJoin("reports r ON r.interaction_id = i.id")
}

func queryLog(ctx context.Context, q querier, b sq.SelectBuilder) ([]domain.Interaction, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build log query: %w", err)
	}
	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query log: %w", err)
	}
	defer rows.Close()

	var out []domain.Interaction
	for rows.Next() {
		var (
			r       logRow
			typ     string
			changes []byte
			data    []byte
		)
		if err := rows.Scan(&r.ix.ID, &r.ix.WebsiteID, &r.ix.UserID, &r.ix.IP, &typ, &r.ix.CreatedAt,
			&changes, &r.body, &data, &r.dataInteractionID, &r.reason); err != nil {
			return nil, fmt.Errorf("scan log row: %w", err)
		}
		r.changes, r.data = changes, data
		ix, err := r.decode(typ)
		if err != nil {
			return nil, err
		}
		out = append(out, ix)
	}
	return out, rows.Err()
}

type logRow struct {
	ix                domain.Interaction
	changes           []byte
	body              *string
	data              []byte
	dataInteractionID *string
	reason            *string
}

// decode turns the flat row into the tagged interaction. A missing child row
// leaves the payload nil; callers surface that as an invariant violation.
func (r logRow) decode(typ string) (domain.Interaction, error) {
	ix := r.ix
	t, err := domain.ParseInteractionType(typ)
	if err != nil {
		return ix, err
	}
	ix.Type = t
	ix.CreatedAt = ix.CreatedAt.UTC()

	switch t {
	case domain.InteractionScan:
		if r.changes != nil {
			var c domain.Changes
			if err := json.Unmarshal(r.changes, &c); err != nil {
				return ix, fmt.Errorf("interaction %s: %w", ix.ID, err)
			}
			ix.Payload = &domain.Scan{Changes: c}
		}
	case domain.InteractionPost:
		if r.body != nil {
			ix.Payload = &domain.Post{Body: *r.body}
		}
	case domain.InteractionMilestone:
		if r.data != nil {
			var d domain.MilestoneData
			if err := json.Unmarshal(r.data, &d); err != nil {
				return ix, fmt.Errorf("interaction %s: %w", ix.ID, err)
			}
			m := &domain.Milestone{Data: d}
			if r.dataInteractionID != nil {
				m.DataInteractionID = *r.dataInteractionID
			}
			ix.Payload = m
		}
	case domain.InteractionReport:
		if r.reason != nil {
			ix.Payload = &domain.Report{Reason: *r.reason}
		}
	}
	return ix, nil
}

// changesJSON encodes a scan snapshot with deterministic key order.
func changesJSON(c domain.Changes) ([]byte, error) {
	raw := make(map[string]string, len(c))
	for k, v := range c {
		raw[string(k)] = string(v)
	}
	return json.Marshal(raw)
}
