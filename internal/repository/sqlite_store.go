package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"JaxSpot/internal/domain/models"
	"JaxSpot/internal/domain/repository"
)

// SQLiteStore persists users, picks, and the app catalog in one SQLite
// database. Writes are serialized by the driver; WAL keeps readers cheap.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads do not block pick writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	// A single writer keeps the driver happy under concurrent handlers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			display_name  TEXT NOT NULL,
			avatar        TEXT NOT NULL DEFAULT '',
			tier          TEXT NOT NULL,
			join_date     INTEGER NOT NULL,
			total_trades  INTEGER NOT NULL DEFAULT 0,
			win_rate      REAL NOT NULL DEFAULT 0,
			total_pnl     REAL NOT NULL DEFAULT 0,
			is_active     INTEGER NOT NULL DEFAULT 1,
			last_login    INTEGER,
			preferences   TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at    INTEGER NOT NULL,
			updated_at    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,

		`CREATE TABLE IF NOT EXISTS picks (
			id            TEXT PRIMARY KEY,
			symbol        TEXT NOT NULL,
			name          TEXT NOT NULL,
			stage         TEXT NOT NULL,
			status        TEXT NOT NULL,
			entry_price   REAL NOT NULL,
			target_price  REAL NOT NULL,
			stop_loss     REAL NOT NULL,
			confidence    REAL NOT NULL,
			pnl           REAL NOT NULL DEFAULT 0,
			actual_exit   REAL,
			reasoning     TEXT,
			created_by    TEXT NOT NULL DEFAULT '',
			date_created  INTEGER NOT NULL,
			date_resolved INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_picks_created ON picks(date_created)`,
		`CREATE INDEX IF NOT EXISTS idx_picks_status ON picks(status)`,

		`CREATE TABLE IF NOT EXISTS apps (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			description   TEXT,
			icon          TEXT,
			url           TEXT,
			category      TEXT,
			required_tier TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Health pings the database.
func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Users returns the user store view.
func (s *SQLiteStore) Users() repository.UserStore { return (*sqliteUsers)(s) }

// Picks returns the pick store view.
func (s *SQLiteStore) Picks() repository.PickStore { return (*sqlitePicks)(s) }

// Apps returns the app catalog view.
func (s *SQLiteStore) Apps() repository.AppStore { return (*sqliteApps)(s) }

// --- users ---

type sqliteUsers SQLiteStore

func (s *sqliteUsers) Create(ctx context.Context, u *models.User) error {
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, display_name, avatar, tier, join_date, total_trades, win_rate, total_pnl, is_active, last_login, preferences, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.DisplayName, u.Avatar, string(u.Tier),
		u.JoinDate.Unix(), u.TotalTrades, u.WinRate, u.TotalPnL, u.IsActive,
		unixOrNil(u.LastLogin), string(prefs), u.PasswordHash,
		u.CreatedAt.Unix(), u.UpdatedAt.Unix())
	return err
}

const userSelect = `SELECT id, email, display_name, avatar, tier, join_date, total_trades, win_rate, total_pnl, is_active, last_login, preferences, password_hash, created_at, updated_at FROM users`

func (s *sqliteUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE id = ?`, id))
}

func (s *sqliteUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE email = ?`, email))
}

func (s *sqliteUsers) Update(ctx context.Context, u *models.User) error {
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET email = ?, display_name = ?, avatar = ?, tier = ?, total_trades = ?, win_rate = ?, total_pnl = ?, is_active = ?, last_login = ?, preferences = ?, password_hash = ?, updated_at = ?
		 WHERE id = ?`,
		u.Email, u.DisplayName, u.Avatar, string(u.Tier),
		u.TotalTrades, u.WinRate, u.TotalPnL, u.IsActive, unixOrNil(u.LastLogin),
		string(prefs), u.PasswordHash, u.UpdatedAt.Unix(), u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var tier, prefs string
	var joined, created, updated int64
	var lastLogin sql.NullInt64
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Avatar, &tier,
		&joined, &u.TotalTrades, &u.WinRate, &u.TotalPnL, &u.IsActive,
		&lastLogin, &prefs, &u.PasswordHash, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Tier = models.ParseTier(tier)
	if err := json.Unmarshal([]byte(prefs), &u.Preferences); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}
	u.JoinDate = time.Unix(joined, 0)
	if lastLogin.Valid {
		t := time.Unix(lastLogin.Int64, 0)
		u.LastLogin = &t
	}
	u.CreatedAt = time.Unix(created, 0)
	u.UpdatedAt = time.Unix(updated, 0)
	return &u, nil
}

// --- picks ---

type sqlitePicks SQLiteStore

func (s *sqlitePicks) Create(ctx context.Context, p *models.Pick) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO picks (id, symbol, name, stage, status, entry_price, target_price, stop_loss, confidence, pnl, actual_exit, reasoning, created_by, date_created, date_resolved)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Symbol, p.Name, string(p.Stage), string(p.Status),
		p.EntryPrice, p.TargetPrice, p.StopLoss, p.Confidence, p.PnL,
		p.ActualExit, p.Reasoning, p.CreatedBy, p.DateCreated.Unix(), unixOrNil(p.DateResolved))
	return err
}

func (s *sqlitePicks) GetByID(ctx context.Context, id string) (*models.Pick, error) {
	rows, err := s.db.QueryContext(ctx, pickSelect+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, repository.ErrNotFound
	}
	return scanPick(rows)
}

func (s *sqlitePicks) List(ctx context.Context, filter repository.PickFilter) ([]*models.Pick, error) {
	q := pickSelect + ` WHERE 1=1`
	var args []interface{}
	if filter.Stage != "" {
		q += ` AND stage = ?`
		args = append(args, string(filter.Stage))
	}
	if filter.Status != "" {
		q += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	q += ` ORDER BY date_created DESC`
	if filter.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, err
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

func (s *sqlitePicks) Update(ctx context.Context, p *models.Pick) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE picks SET status = ?, pnl = ?, actual_exit = ?, date_resolved = ? WHERE id = ?`,
		string(p.Status), p.PnL, p.ActualExit, unixOrNil(p.DateResolved), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const pickSelect = `SELECT id, symbol, name, stage, status, entry_price, target_price, stop_loss, confidence, pnl, actual_exit, reasoning, created_by, date_created, date_resolved FROM picks`

func scanPick(rows *sql.Rows) (*models.Pick, error) {
	var p models.Pick
	var stage, status string
	var reasoning sql.NullString
	var actualExit sql.NullFloat64
	var created int64
	var resolved sql.NullInt64
	err := rows.Scan(&p.ID, &p.Symbol, &p.Name, &stage, &status,
		&p.EntryPrice, &p.TargetPrice, &p.StopLoss, &p.Confidence, &p.PnL,
		&actualExit, &reasoning, &p.CreatedBy, &created, &resolved)
	if err != nil {
		return nil, err
	}
	p.Stage = models.Stage(stage)
	p.Status = models.PickStatus(status)
	p.Reasoning = reasoning.String
	if actualExit.Valid {
		p.ActualExit = &actualExit.Float64
	}
	p.DateCreated = time.Unix(created, 0)
	if resolved.Valid {
		t := time.Unix(resolved.Int64, 0)
		p.DateResolved = &t
	}
	return &p, nil
}

func unixOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}

// --- apps ---

type sqliteApps SQLiteStore

func (s *sqliteApps) List(ctx context.Context) ([]*models.PlatformApp, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, icon, url, category, required_tier FROM apps ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.PlatformApp
	for rows.Next() {
		a, err := scanApp(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (s *sqliteApps) GetByID(ctx context.Context, id string) (*models.PlatformApp, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, icon, url, category, required_tier FROM apps WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, repository.ErrNotFound
	}
	return scanApp(rows)
}

func scanApp(rows *sql.Rows) (*models.PlatformApp, error) {
	var a models.PlatformApp
	var desc, icon, url, category sql.NullString
	var tier string
	if err := rows.Scan(&a.ID, &a.Name, &desc, &icon, &url, &category, &tier); err != nil {
		return nil, err
	}
	a.Description = desc.String
	a.Icon = icon.String
	a.URL = url.String
	a.Category = category.String
	a.RequiredTier = models.ParseTier(tier)
	return &a, nil
}

// SeedApps inserts the default catalog when the table is empty.
func (s *SQLiteStore) SeedApps(ctx context.Context, apps []*models.PlatformApp) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM apps`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, a := range apps {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO apps (id, name, description, icon, url, category, required_tier) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Name, a.Description, a.Icon, a.URL, a.Category, string(a.RequiredTier))
		if err != nil {
			return err
		}
	}
	return nil
}
