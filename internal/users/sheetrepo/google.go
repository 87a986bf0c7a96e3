package sheetrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/abhisek/chemiz/internal/users"
)

// New worksheets get this grid size.
const (
	defaultRowCount    = 1000
	defaultColumnCount = 20
)

// GoogleTable is a Table backed by a Google Sheets worksheet.
type GoogleTable struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewGoogleTable authenticates with the service-account key in cfg and
// returns a table for the configured worksheet.
func NewGoogleTable(ctx context.Context, cfg users.SheetConfig) (*GoogleTable, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, &users.UnavailableError{Backend: backendName, Op: "connect", Err: err}
	}
	return &GoogleTable{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
	}, nil
}

// NewRepo connects to Google Sheets and returns a repository over the
// configured worksheet.
func NewRepo(ctx context.Context, cfg users.SheetConfig, logger *slog.Logger) (*Repo, error) {
	t, err := NewGoogleTable(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(t, logger), nil
}

func (t *GoogleTable) Ensure(ctx context.Context) error {
	ok, err := t.exists(ctx)
	if err != nil || ok {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: t.worksheet,
					GridProperties: &sheets.GridProperties{
						RowCount:    defaultRowCount,
						ColumnCount: defaultColumnCount,
					},
				},
			},
		}},
	}
	if _, err := t.svc.Spreadsheets.BatchUpdate(t.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add worksheet %q: %w", t.worksheet, err)
	}
	return nil
}

func (t *GoogleTable) Rows(ctx context.Context) ([][]string, error) {
	resp, err := t.svc.Spreadsheets.Values.Get(t.spreadsheetID, t.quoted()).Context(ctx).Do()
	if err != nil {
		if isBadRange(err) {
			if ok, existsErr := t.exists(ctx); existsErr == nil && !ok {
				return nil, ErrWorksheetNotFound
			}
		}
		return nil, err
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (t *GoogleTable) UpdateRow(ctx context.Context, n int, values []string) error {
	rng := fmt.Sprintf("%s!A%d:%s%d", t.quoted(), n, columnName(len(values)), n)
	vr := &sheets.ValueRange{Values: [][]any{toCells(values)}}
	_, err := t.svc.Spreadsheets.Values.Update(t.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (t *GoogleTable) AppendRow(ctx context.Context, values []string) error {
	vr := &sheets.ValueRange{Values: [][]any{toCells(values)}}
	_, err := t.svc.Spreadsheets.Values.Append(t.spreadsheetID, t.quoted()+"!A1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (t *GoogleTable) exists(ctx context.Context) (bool, error) {
	ss, err := t.svc.Spreadsheets.Get(t.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return false, err
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == t.worksheet {
			return true, nil
		}
	}
	return false, nil
}

func (t *GoogleTable) quoted() string {
	return "'" + strings.ReplaceAll(t.worksheet, "'", "''") + "'"
}

func isBadRange(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// columnName returns the A1 column letters for a 1-based column index.
func columnName(n int) string {
	if n < 1 {
		n = 1
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
