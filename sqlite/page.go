package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docsearch.PageService = (*PageService)(nil)

// PageService implements docsearch.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreatePage stores a page, replacing any page previously stored for the
// same URL. The page's ID, ContentHash and FetchedAt are assigned here.
func (s *PageService) CreatePage(ctx context.Context, page *docsearch.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.FetchedAt = time.Now().UTC()
	page.ContentHash = hashContent(page.HTML)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, title, html, content_hash, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			html = excluded.html,
			content_hash = excluded.content_hash,
			position = excluded.position,
			fetched_at = excluded.fetched_at
	`, page.ID, page.URL, page.Title, page.HTML, page.ContentHash,
		page.Position, page.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPageByURL retrieves a page by URL.
// Returns ENOTFOUND if no page is stored for the URL.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*docsearch.Page, error) {
	var page docsearch.Page
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, html, content_hash, position, fetched_at
		FROM pages
		WHERE url = ?
	`, url).Scan(&page.ID, &page.URL, &page.Title, &page.HTML,
		&page.ContentHash, &page.Position, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "page not found: %s", url)
	}
	if err != nil {
		return nil, err
	}

	page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// FindPages retrieves pages matching the filter, ordered by position.
func (s *PageService) FindPages(ctx context.Context, filter docsearch.PageFilter) ([]*docsearch.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, html, content_hash, position, fetched_at FROM pages WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY position ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*docsearch.Page
	for rows.Next() {
		var page docsearch.Page
		var fetchedAt string

		if err := rows.Scan(&page.ID, &page.URL, &page.Title, &page.HTML,
			&page.ContentHash, &page.Position, &fetchedAt); err != nil {
			return nil, err
		}

		page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}

// DeletePages removes all stored pages.
func (s *PageService) DeletePages(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pages")
	return err
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses if the values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
