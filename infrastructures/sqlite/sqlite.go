package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/catalog"
	"github.com/AngellusMortis/sxm-player/domain/model/unit"
	"github.com/AngellusMortis/sxm-player/domain/repository"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type cutSqlite struct {
	GUID      string         `db:"guid"`
	Kind      string         `db:"kind"`
	ChannelID string         `db:"channel_id"`
	Title     string         `db:"title"`
	Artist    sql.NullString `db:"artist"`
	Show      sql.NullString `db:"show"`
	Start     time.Time      `db:"start"`
	End       time.Time      `db:"end"`
	Status    string         `db:"status"`
	Attempts  int            `db:"attempts"`
	Reason    sql.NullString `db:"reason"`
}

func cutSqliteToModelUnit(cut cutSqlite) unit.Unit {
	return unit.Unit{
		GUID:      cut.GUID,
		Kind:      unit.Kind(cut.Kind),
		ChannelID: cut.ChannelID,
		Title:     cut.Title,
		Artist:    cut.Artist.String, // empty string is fine here
		Show:      cut.Show.String,
		Start:     cut.Start,
		End:       cut.End,
	}
}

func modelUnitToCutSqlite(u unit.Unit) cutSqlite {
	var artist sql.NullString
	if u.Artist == "" {
		artist.Valid = false
	} else {
		artist.Valid = true
		artist.String = u.Artist
	}

	var show sql.NullString
	if u.Show == "" {
		show.Valid = false
	} else {
		show.Valid = true
		show.String = u.Show
	}

	return cutSqlite{
		GUID:      u.GUID,
		Kind:      u.Kind.String(),
		ChannelID: u.ChannelID,
		Title:     u.Title,
		Artist:    artist,
		Show:      show,
		Start:     u.Start,
		End:       u.End,
	}
}

type entrySqlite struct {
	GUID       string         `db:"guid"`
	Kind       string         `db:"kind"`
	ChannelID  string         `db:"channel_id"`
	Title      string         `db:"title"`
	Artist     sql.NullString `db:"artist"`
	Show       sql.NullString `db:"show"`
	Start      time.Time      `db:"start"`
	End        time.Time      `db:"end"`
	FilePath   string         `db:"file_path"`
	FinishedAt time.Time      `db:"finished_at"`
}

func entrySqliteToModelEntry(row entrySqlite) catalog.Entry {
	return catalog.Entry{
		Unit: unit.Unit{
			GUID:      row.GUID,
			Kind:      unit.Kind(row.Kind),
			ChannelID: row.ChannelID,
			Title:     row.Title,
			Artist:    row.Artist.String,
			Show:      row.Show.String,
			Start:     row.Start,
			End:       row.End,
		},
		FilePath:   row.FilePath,
		FinishedAt: row.FinishedAt,
	}
}

func modelEntryToEntrySqlite(entry catalog.Entry) entrySqlite {
	var artist sql.NullString
	if entry.Unit.Artist == "" {
		artist.Valid = false
	} else {
		artist.Valid = true
		artist.String = entry.Unit.Artist
	}

	var show sql.NullString
	if entry.Unit.Show == "" {
		show.Valid = false
	} else {
		show.Valid = true
		show.String = entry.Unit.Show
	}

	return entrySqlite{
		GUID:       entry.Unit.GUID,
		Kind:       entry.Unit.Kind.String(),
		ChannelID:  entry.Unit.ChannelID,
		Title:      entry.Unit.Title,
		Artist:     artist,
		Show:       show,
		Start:      entry.Unit.Start,
		End:        entry.Unit.End,
		FilePath:   entry.FilePath,
		FinishedAt: entry.FinishedAt,
	}
}

func NewDB(dbPath string) (*sqlx.DB, error) {
	// splice workers and the api share the one file
	db, err := sqlx.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(errutil.ErrDatabaseOpen, err.Error())
	}
	return db, nil
}

// table setup
func Setup(db *sqlx.DB) error {
	_, err := db.Exec(`create table if not exists cuts (
		guid text primary key,
		kind text not null,
		channel_id text not null,
		title text not null,
		artist text,
		show text,
		start timestamp not null,
		end timestamp not null,
		status text not null,
		attempts integer not null default 0,
		reason text,
		created_at timestamp not null default (datetime('now', 'localtime')),
		updated_at timestamp not null default (datetime('now', 'localtime'))
	);`)
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	_, err = db.Exec(`CREATE TRIGGER if not exists trigger_cuts_updated_at AFTER UPDATE ON cuts
		BEGIN
			UPDATE cuts SET updated_at = DATETIME('now', 'localtime') WHERE rowid == NEW.rowid;
		END;
		`)
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	_, err = db.Exec(`create table if not exists catalog_entries (
		guid text primary key,
		kind text not null,
		channel_id text not null,
		title text not null,
		artist text,
		show text,
		start timestamp not null,
		end timestamp not null,
		file_path text not null,
		finished_at timestamp not null,
		created_at timestamp not null default (datetime('now', 'localtime'))
	);`)
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	_, err = db.Exec(`create index if not exists idx_catalog_entries_channel_finished
		on catalog_entries (channel_id, finished_at desc);`)
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	return nil
}

type client struct {
	DB *sqlx.DB
}

func New(db *sqlx.DB) repository.Catalog {
	return &client{
		DB: db,
	}
}

func (c *client) SavePending(ctx context.Context, u unit.Unit) error {
	rows, err := c.DB.QueryxContext(ctx, "select count(*) from cuts where guid = ?", u.GUID)
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	var lineCount int
	for rows.Next() {
		err := rows.Scan(&lineCount)
		if err != nil {
			return errors.Wrap(errutil.ErrDatabaseScan, err.Error())
		}
	}

	// a replayed boundary keeps its first row
	if lineCount != 0 {
		return nil
	}

	cut := modelUnitToCutSqlite(u)
	cut.Status = unit.StatusPending.String()
	_, err = c.DB.NamedExecContext(ctx,
		`insert into cuts (guid, kind, channel_id, title, artist, show, start, end, status)
		values
		(:guid, :kind, :channel_id, :title, :artist, :show, :start, :end, :status)`,
		cut)
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	return nil
}

func (c *client) LoadPending(ctx context.Context, channelID string, limit int) ([]unit.Unit, error) {
	var cutsSqlite []cutSqlite
	err := c.DB.SelectContext(ctx, &cutsSqlite,
		`select guid, kind, channel_id, title, artist, show, start, end, status, attempts, reason from cuts
		where status = 'pending' and channel_id = ?
		order by start asc
		limit ?`,
		channelID, limit)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	units := make([]unit.Unit, 0, len(cutsSqlite))
	for _, cut := range cutsSqlite {
		units = append(units, cutSqliteToModelUnit(cut))
	}

	return units, nil
}

func (c *client) RecordAttempt(ctx context.Context, guid string) (int, error) {
	_, err := c.DB.ExecContext(ctx, `update cuts set attempts = attempts + 1 where guid = ?`, guid)
	if err != nil {
		return 0, errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	var attempts int
	err = c.DB.GetContext(ctx, &attempts, `select attempts from cuts where guid = ?`, guid)
	if err != nil {
		return 0, errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	return attempts, nil
}

func (c *client) Abandon(ctx context.Context, guid string, reason string) error {
	_, err := c.DB.NamedExecContext(ctx,
		`update cuts set status = :status, reason = :reason where guid = :guid`,
		map[string]interface{}{"status": unit.StatusAbandoned.String(), "reason": reason, "guid": guid})
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	return nil
}

func (c *client) Insert(ctx context.Context, entry catalog.Entry) error {
	tx, err := c.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	var committed bool
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	entryRow := modelEntryToEntrySqlite(entry)
	_, err = tx.NamedExecContext(ctx,
		`insert into catalog_entries (guid, kind, channel_id, title, artist, show, start, end, file_path, finished_at)
		values
		(:guid, :kind, :channel_id, :title, :artist, :show, :start, :end, :file_path, :finished_at)
		on conflict (guid) do update set file_path = excluded.file_path, finished_at = excluded.finished_at`,
		entryRow)
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	_, err = tx.ExecContext(ctx, `update cuts set status = ? where guid = ?`,
		unit.StatusDone.String(), entry.Unit.GUID)
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	err = tx.Commit()
	if err != nil {
		return errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}
	committed = true

	return nil
}

// errors returned
// - errutil.ErrDatabaseNotFoundUnit
func (c *client) Get(ctx context.Context, guid string) (*catalog.Entry, error) {
	var entriesSqlite []entrySqlite
	err := c.DB.SelectContext(ctx, &entriesSqlite,
		`select guid, kind, channel_id, title, artist, show, start, end, file_path, finished_at from catalog_entries where guid = ?`,
		guid)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	if len(entriesSqlite) == 0 {
		return nil, errors.Wrapf(errutil.ErrDatabaseNotFoundUnit, "not found unit (guid = %s)", guid)
	}

	entry := entrySqliteToModelEntry(entriesSqlite[0])
	return &entry, nil
}

// clients may not page through the whole catalog
const searchLimitMax = 10

func (c *client) Search(ctx context.Context, kind unit.Kind, text string, limit int) ([]catalog.Entry, error) {
	if limit <= 0 || limit > searchLimitMax {
		limit = searchLimitMax
	}

	pattern := "%" + text + "%"
	query := `select guid, kind, channel_id, title, artist, show, start, end, file_path, finished_at from catalog_entries
		where (title like ? or artist like ? or show like ? or guid = ?)`
	args := []interface{}{pattern, pattern, pattern, text}
	if kind != "" {
		query += ` and kind = ?`
		args = append(args, kind.String())
	}
	query += ` order by finished_at desc limit ?`
	args = append(args, limit)

	var entriesSqlite []entrySqlite
	err := c.DB.SelectContext(ctx, &entriesSqlite, query, args...)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	entries := make([]catalog.Entry, 0, len(entriesSqlite))
	for _, row := range entriesSqlite {
		entries = append(entries, entrySqliteToModelEntry(row))
	}

	return entries, nil
}

func (c *client) Recent(ctx context.Context, channelID string, limit int) ([]catalog.Entry, error) {
	if limit <= 0 || limit > searchLimitMax {
		limit = searchLimitMax
	}

	var entriesSqlite []entrySqlite
	err := c.DB.SelectContext(ctx, &entriesSqlite,
		`select guid, kind, channel_id, title, artist, show, start, end, file_path, finished_at from catalog_entries
		where channel_id = ?
		order by finished_at desc
		limit ?`,
		channelID, limit)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	entries := make([]catalog.Entry, 0, len(entriesSqlite))
	for _, row := range entriesSqlite {
		entries = append(entries, entrySqliteToModelEntry(row))
	}

	return entries, nil
}

func (c *client) CountSongCopies(ctx context.Context, title string, artist string) (int, error) {
	var count int
	err := c.DB.GetContext(ctx, &count,
		`select count(*) from catalog_entries where kind = 'song' and title = ? and artist = ?`,
		title, artist)
	if err != nil {
		return 0, errors.Wrap(errutil.ErrDatabaseQuery, err.Error())
	}

	return count, nil
}
