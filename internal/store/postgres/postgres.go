// Package postgres persists catalog mutations to PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"tya/internal/catalog"
	"tya/internal/store"
)

const (
	upsertArtist = `
		INSERT INTO artists (id, artistic_name, artistic_biography, artistic_image, artistic_email, social_media_url, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			artistic_name = EXCLUDED.artistic_name,
			artistic_biography = EXCLUDED.artistic_biography,
			artistic_image = EXCLUDED.artistic_image,
			artistic_email = EXCLUDED.artistic_email,
			social_media_url = EXCLUDED.social_media_url
	`
	upsertAlbum = `
		INSERT INTO albums (id, title, songs, cover, price, release_date, artist_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			songs = EXCLUDED.songs,
			cover = EXCLUDED.cover,
			price = EXCLUDED.price,
			release_date = EXCLUDED.release_date
	`
	upsertSong = `
		INSERT INTO songs (id, title, genres, cover, price, track_id, duration, description, release_date, album_id, album_order, artist_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			genres = EXCLUDED.genres,
			cover = EXCLUDED.cover,
			price = EXCLUDED.price,
			track_id = EXCLUDED.track_id,
			duration = EXCLUDED.duration,
			description = EXCLUDED.description,
			release_date = EXCLUDED.release_date,
			album_id = EXCLUDED.album_id,
			album_order = EXCLUDED.album_order
	`
	upsertMerch = `
		INSERT INTO merch (id, title, description, cover, price, artist_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			cover = EXCLUDED.cover,
			price = EXCLUDED.price
	`
	upsertSequence = `
		INSERT INTO id_sequences (kind, last_id)
		VALUES ($1, $2)
		ON CONFLICT (kind) DO UPDATE SET last_id = GREATEST(id_sequences.last_id, EXCLUDED.last_id)
	`

	selectArtists  = `SELECT id, artistic_name, artistic_biography, artistic_image, artistic_email, social_media_url, user_id FROM artists ORDER BY id`
	selectAlbums   = `SELECT id, title, songs, cover, price, release_date, artist_id FROM albums ORDER BY id`
	selectSongs    = `SELECT id, title, genres, cover, price, track_id, duration, description, release_date, album_id, album_order, artist_id FROM songs ORDER BY id`
	selectMerch    = `SELECT id, title, description, cover, price, artist_id FROM merch ORDER BY id`
	selectSequence = `SELECT kind, last_id FROM id_sequences`
)

var deletes = map[catalog.Kind]string{
	catalog.KindSong:   `DELETE FROM songs WHERE id = $1`,
	catalog.KindAlbum:  `DELETE FROM albums WHERE id = $1`,
	catalog.KindMerch:  `DELETE FROM merch WHERE id = $1`,
	catalog.KindArtist: `DELETE FROM artists WHERE id = $1`,
}

// Persister writes store batches inside one transaction each.
type Persister struct {
	db *sql.DB
}

// New returns a Persister using db.
func New(db *sql.DB) *Persister {
	return &Persister{db: db}
}

// Commit applies removals first, then upserts, then advances the id sequences.
func (p *Persister) Commit(ctx context.Context, b store.Batch) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, r := range b.Removals {
		query, ok := deletes[r.Kind]
		if !ok {
			return fmt.Errorf("unknown kind %q", r.Kind)
		}
		if _, err := tx.ExecContext(ctx, query, r.ID); err != nil {
			return fmt.Errorf("delete %s %d: %w", r.Kind, r.ID, err)
		}
	}

	seq := map[catalog.Kind]int64{}
	for _, a := range b.Artists {
		if _, err := tx.ExecContext(ctx, upsertArtist,
			a.ID, a.ArtisticName, a.ArtisticBiography, a.ArtisticImage, a.ArtisticEmail, a.SocialMediaURL, a.UserID,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: user %d already has an artist", catalog.ErrValidation, a.UserID)
			}
			return fmt.Errorf("upsert artist %d: %w", a.ID, err)
		}
		seq[catalog.KindArtist] = max(seq[catalog.KindArtist], a.ID)
	}
	for _, a := range b.Albums {
		songs := a.Songs
		if songs == nil {
			songs = []int64{}
		}
		if _, err := tx.ExecContext(ctx, upsertAlbum,
			a.ID, a.Title, pq.Array(songs), a.Cover, a.Price, a.ReleaseDate, a.ArtistID,
		); err != nil {
			return fmt.Errorf("upsert album %d: %w", a.ID, err)
		}
		seq[catalog.KindAlbum] = max(seq[catalog.KindAlbum], a.ID)
	}
	for _, s := range b.Songs {
		if _, err := tx.ExecContext(ctx, upsertSong,
			s.ID, s.Title, pq.Array(s.Genres), s.Cover, s.Price, s.TrackID, s.Duration,
			s.Description, s.ReleaseDate, nullInt64(s.AlbumID), nullInt(s.AlbumOrder), s.ArtistID,
		); err != nil {
			return fmt.Errorf("upsert song %d: %w", s.ID, err)
		}
		seq[catalog.KindSong] = max(seq[catalog.KindSong], s.ID)
	}
	for _, m := range b.Merch {
		if _, err := tx.ExecContext(ctx, upsertMerch,
			m.ID, m.Title, m.Description, m.Cover, m.Price, m.ArtistID,
		); err != nil {
			return fmt.Errorf("upsert merch %d: %w", m.ID, err)
		}
		seq[catalog.KindMerch] = max(seq[catalog.KindMerch], m.ID)
	}

	for _, kind := range []catalog.Kind{catalog.KindArtist, catalog.KindAlbum, catalog.KindSong, catalog.KindMerch} {
		last, ok := seq[kind]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, upsertSequence, string(kind), last); err != nil {
			return fmt.Errorf("advance %s sequence: %w", kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil
	return nil
}

// Load reads every table ordered by id.
func (p *Persister) Load(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot
	var err error

	if snap.Artists, err = p.loadArtists(ctx); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Albums, err = p.loadAlbums(ctx); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Songs, err = p.loadSongs(ctx); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Merch, err = p.loadMerch(ctx); err != nil {
		return store.Snapshot{}, err
	}
	if snap.Sequences, err = p.loadSequences(ctx); err != nil {
		return store.Snapshot{}, err
	}
	return snap, nil
}

func (p *Persister) loadArtists(ctx context.Context) ([]catalog.Artist, error) {
	rows, err := p.db.QueryContext(ctx, selectArtists)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	var out []catalog.Artist
	for rows.Next() {
		var a catalog.Artist
		if err := rows.Scan(&a.ID, &a.ArtisticName, &a.ArtisticBiography, &a.ArtisticImage,
			&a.ArtisticEmail, &a.SocialMediaURL, &a.UserID); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *Persister) loadAlbums(ctx context.Context) ([]catalog.Album, error) {
	rows, err := p.db.QueryContext(ctx, selectAlbums)
	if err != nil {
		return nil, fmt.Errorf("select albums: %w", err)
	}
	defer rows.Close()

	var out []catalog.Album
	for rows.Next() {
		var a catalog.Album
		if err := rows.Scan(&a.ID, &a.Title, pq.Array(&a.Songs), &a.Cover, &a.Price,
			&a.ReleaseDate, &a.ArtistID); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *Persister) loadSongs(ctx context.Context) ([]catalog.Song, error) {
	rows, err := p.db.QueryContext(ctx, selectSongs)
	if err != nil {
		return nil, fmt.Errorf("select songs: %w", err)
	}
	defer rows.Close()

	var out []catalog.Song
	for rows.Next() {
		var (
			s          catalog.Song
			albumID    sql.NullInt64
			albumOrder sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Title, pq.Array(&s.Genres), &s.Cover, &s.Price, &s.TrackID,
			&s.Duration, &s.Description, &s.ReleaseDate, &albumID, &albumOrder, &s.ArtistID); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		if albumID.Valid {
			id := albumID.Int64
			s.AlbumID = &id
		}
		if albumOrder.Valid {
			order := int(albumOrder.Int64)
			s.AlbumOrder = &order
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *Persister) loadMerch(ctx context.Context) ([]catalog.Merch, error) {
	rows, err := p.db.QueryContext(ctx, selectMerch)
	if err != nil {
		return nil, fmt.Errorf("select merch: %w", err)
	}
	defer rows.Close()

	var out []catalog.Merch
	for rows.Next() {
		var m catalog.Merch
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Cover, &m.Price, &m.ArtistID); err != nil {
			return nil, fmt.Errorf("scan merch: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (p *Persister) loadSequences(ctx context.Context) (map[catalog.Kind]int64, error) {
	rows, err := p.db.QueryContext(ctx, selectSequence)
	if err != nil {
		return nil, fmt.Errorf("select sequences: %w", err)
	}
	defer rows.Close()

	out := make(map[catalog.Kind]int64)
	for rows.Next() {
		var (
			kind string
			last int64
		)
		if err := rows.Scan(&kind, &last); err != nil {
			return nil, fmt.Errorf("scan sequence: %w", err)
		}
		out[catalog.Kind(kind)] = last
	}
	return out, rows.Err()
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
