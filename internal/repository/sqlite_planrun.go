package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gradplan/internal/db"
	"github.com/alexanderramin/gradplan/internal/domain"
)

// SQLitePlanRunRepo implements PlanRunRepo. A run spans three tables:
// plan_runs, program_results (one row per shortlisted program) and
// timeline_tasks (one row per task, keyed by result and position).
type SQLitePlanRunRepo struct {
	db db.DBTX
}

func NewSQLitePlanRunRepo(conn db.DBTX) *SQLitePlanRunRepo {
	return &SQLitePlanRunRepo{db: conn}
}

func (r *SQLitePlanRunRepo) Create(ctx context.Context, run *domain.PlanRun) error {
	profile, err := toJSON(run.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	qna, err := toJSON(run.QnA)
	if err != nil {
		return fmt.Errorf("encoding qna: %w", err)
	}
	source := run.Source
	if source == "" {
		source = domain.SourceCLI
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO plan_runs (id, profile_json, today, status, qna_json, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		profile,
		domain.FormatDate(run.Today),
		string(run.Status),
		qna,
		source,
		formatTimestamp(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}

	for i := range run.Results {
		if err := r.insertResult(ctx, run.ID, i, &run.Results[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLitePlanRunRepo) insertResult(ctx context.Context, runID string, position int, res *domain.ProgramResult) error {
	program, err := toJSON(res.Program)
	if err != nil {
		return fmt.Errorf("encoding program: %w", err)
	}
	reqs, err := toJSON(res.Requirements)
	if err != nil {
		return fmt.Errorf("encoding requirements: %w", err)
	}
	warnings, err := toJSON(res.Warnings)
	if err != nil {
		return fmt.Errorf("encoding warnings: %w", err)
	}

	out, err := r.db.ExecContext(ctx,
		`INSERT INTO program_results (run_id, position, program_json, requirements_json,
			window_today, window_deadline, adjusted, original_deadline, adjustment_reason,
			outcome, warnings_json, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		position,
		program,
		reqs,
		domain.FormatDate(res.Window.Today),
		domain.FormatDate(res.Window.Deadline),
		boolToInt(res.Adjustment.Adjusted),
		res.Adjustment.OriginalDeadline,
		res.Adjustment.Reason,
		string(res.Outcome),
		warnings,
		res.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting program result %d: %w", position, err)
	}
	resultID, err := out.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading program result id: %w", err)
	}

	for i, task := range res.Timeline {
		status := task.Status
		if status == "" {
			status = domain.TaskPending
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO timeline_tasks (result_id, position, title, description, due_date, category, dependency, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			resultID,
			i,
			task.Title,
			task.Description,
			task.DueDate,
			string(task.Category),
			nullableString(task.Dependency),
			string(status),
		)
		if err != nil {
			return fmt.Errorf("inserting task %d of result %d: %w", i, position, err)
		}
	}
	return nil
}

func (r *SQLitePlanRunRepo) GetByID(ctx context.Context, id string) (*domain.PlanRun, error) {
	var (
		run                 domain.PlanRun
		profile, qna, today string
		status, createdAt   string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, profile_json, today, status, qna_json, source, created_at
		FROM plan_runs WHERE id = ?`, id,
	).Scan(&run.ID, &profile, &today, &status, &qna, &run.Source, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan run: %w", err)
	}

	run.Status = domain.RunStatus(status)
	if err := fromJSON("profile_json", profile, &run.Profile); err != nil {
		return nil, err
	}
	if err := fromJSON("qna_json", qna, &run.QnA); err != nil {
		return nil, err
	}
	if run.Today, err = domain.ParseDate(today); err != nil {
		return nil, fmt.Errorf("parsing run date: %w", err)
	}
	if run.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}

	results, ids, err := r.loadResults(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, id, results, ids); err != nil {
		return nil, err
	}
	run.Results = results
	return &run, nil
}

func (r *SQLitePlanRunRepo) loadResults(ctx context.Context, runID string) ([]domain.ProgramResult, map[int64]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, program_json, requirements_json, window_today, window_deadline,
			adjusted, original_deadline, adjustment_reason, outcome, warnings_json, error
		FROM program_results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing program results: %w", err)
	}
	defer rows.Close()

	results := []domain.ProgramResult{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			res                     domain.ProgramResult
			resultID                int64
			program, reqs, warnings string
			windowToday, windowEnd  string
			adjusted                int
			outcome                 string
		)
		if err := rows.Scan(&resultID, &program, &reqs, &windowToday, &windowEnd,
			&adjusted, &res.Adjustment.OriginalDeadline, &res.Adjustment.Reason,
			&outcome, &warnings, &res.Error); err != nil {
			return nil, nil, fmt.Errorf("scanning program result: %w", err)
		}
		if err := fromJSON("program_json", program, &res.Program); err != nil {
			return nil, nil, err
		}
		if err := fromJSON("requirements_json", reqs, &res.Requirements); err != nil {
			return nil, nil, err
		}
		if err := fromJSON("warnings_json", warnings, &res.Warnings); err != nil {
			return nil, nil, err
		}
		if res.Window.Today, err = domain.ParseDate(windowToday); err != nil {
			return nil, nil, fmt.Errorf("parsing window start: %w", err)
		}
		if res.Window.Deadline, err = domain.ParseDate(windowEnd); err != nil {
			return nil, nil, fmt.Errorf("parsing window deadline: %w", err)
		}
		res.Adjustment.Adjusted = intToBool(adjusted)
		res.Outcome = domain.PlanOutcome(outcome)
		res.Timeline = domain.Timeline{}

		index[resultID] = len(results)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating program results: %w", err)
	}
	return results, index, nil
}

func (r *SQLitePlanRunRepo) loadTasks(ctx context.Context, runID string, results []domain.ProgramResult, index map[int64]int) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.result_id, t.title, t.description, t.due_date, t.category, t.dependency, t.status
		FROM timeline_tasks t
		JOIN program_results p ON p.id = t.result_id
		WHERE p.run_id = ?
		ORDER BY p.position, t.position`, runID)
	if err != nil {
		return fmt.Errorf("listing timeline tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resultID         int64
			task             domain.TimelineTask
			category, status string
			dependency       sql.NullString
		)
		if err := rows.Scan(&resultID, &task.Title, &task.Description, &task.DueDate,
			&category, &dependency, &status); err != nil {
			return fmt.Errorf("scanning timeline task: %w", err)
		}
		task.Category = domain.TaskCategory(category)
		task.Dependency = stringFromNull(dependency)
		task.Status = domain.TaskStatus(status)

		i, ok := index[resultID]
		if !ok {
			continue
		}
		results[i].Timeline = append(results[i].Timeline, task)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating timeline tasks: %w", err)
	}
	return nil
}

func (r *SQLitePlanRunRepo) List(ctx context.Context, limit int) ([]domain.PlanRunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.status, r.source, r.created_at,
			(SELECT COUNT(*) FROM program_results p WHERE p.run_id = r.id)
		FROM plan_runs r
		ORDER BY r.created_at DESC, r.id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	defer rows.Close()

	var out []domain.PlanRunSummary
	for rows.Next() {
		var (
			s                 domain.PlanRunSummary
			status, createdAt string
		)
		if err := rows.Scan(&s.ID, &status, &s.Source, &createdAt, &s.Programs); err != nil {
			return nil, fmt.Errorf("scanning plan run summary: %w", err)
		}
		s.Status = domain.RunStatus(status)
		if s.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan runs: %w", err)
	}
	return out, nil
}

func (r *SQLitePlanRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plan_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting plan run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plan run %s: %w", id, ErrNotFound)
	}
	return nil
}
