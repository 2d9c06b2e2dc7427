package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/seat-finder-api/internal/config"
	"github.com/seat-finder-api/internal/mocks"
	"github.com/seat-finder-api/internal/models"
	"github.com/seat-finder-api/internal/repository"
	"github.com/seat-finder-api/internal/service"
)

type testHarness struct {
	services *service.Services
	repos    *repository.Repositories
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	repos := repository.New(10)
	cfg := &config.Config{
		Import: config.ImportConfig{
			MaxInputBytes:    1024 * 1024,
			MaxRosterRecords: 100,
			HistoryLimit:     10,
		},
	}

	return &testHarness{
		services: service.NewServices(repos, cfg, zerolog.Nop()),
		repos:    repos,
	}
}

func (h *testHarness) importText(t *testing.T, text string) *models.ImportResult {
	t.Helper()
	result, err := h.services.Import.Import(context.Background(), &models.ImportRequest{Text: text})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	return result
}

func TestImport_EndToEnd(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	result := h.importText(t, "王大明\t1\t主桌\n陳小惠\t3\t女方親友")
	if !result.OK || result.RecordCount != 2 {
		t.Fatalf("Expected ok with 2 records, got %+v", result)
	}
	if result.ImportID == "" {
		t.Error("Expected an import id")
	}

	found := h.services.Lookup.Search(ctx, "陳小惠")
	if !found.Found || *found.Attendee != (models.Attendee{Name: "陳小惠", Table: "3", Note: "女方親友"}) {
		t.Errorf("Expected 陳小惠 at table 3, got %+v", found)
	}

	found = h.services.Lookup.Search(ctx, "王")
	if !found.Found || *found.Attendee != (models.Attendee{Name: "王大明", Table: "1", Note: "主桌"}) {
		t.Errorf("Expected 王大明 at table 1, got %+v", found)
	}

	missing := h.services.Lookup.Search(ctx, "999")
	if !missing.Searched || missing.Found || missing.Attendee != nil {
		t.Errorf("Expected searched but not found, got %+v", missing)
	}
}

func TestImport_PreservesOrderAndFields(t *testing.T) {
	h := newTestHarness(t)

	result := h.importText(t, "a\t1\tx\nb,2\nc，3，z")
	if result.RecordCount != 3 {
		t.Fatalf("Expected 3 records, got %d", result.RecordCount)
	}

	want := []models.Attendee{
		{Name: "a", Table: "1", Note: "x"},
		{Name: "b", Table: "2"},
		{Name: "c", Table: "3", Note: "z"},
	}
	if got := h.services.Roster.Snapshot(context.Background()); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestImport_FailuresLeaveRosterUntouched(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind models.ErrorKind
	}{
		{"empty", "", models.ErrorKindEmptyInput},
		{"whitespace", "   \n  \n", models.ErrorKindEmptyInput},
		{"garbage", "garbage with no delimiters\nmore garbage", models.ErrorKindUnrecognizedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHarness(t)
			before := h.services.Roster.Snapshot(context.Background())

			result := h.importText(t, tt.text)
			if result.OK {
				t.Fatal("Expected import to fail")
			}
			if result.ErrorKind != tt.kind {
				t.Errorf("Expected %s, got %s", tt.kind, result.ErrorKind)
			}

			after := h.services.Roster.Snapshot(context.Background())
			if !reflect.DeepEqual(before, after) {
				t.Errorf("Roster changed on failed import: %v", after)
			}
		})
	}
}

func TestImport_RecordsHistory(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	ok := h.importText(t, "王大明\t1\n\nnoise")
	failed := h.importText(t, "")

	count, _ := h.services.Import.CountImports(ctx)
	if count != 2 {
		t.Fatalf("Expected 2 history entries, got %d", count)
	}

	record, err := h.services.Import.GetImport(ctx, ok.ImportID)
	if err != nil || record == nil {
		t.Fatalf("Expected history entry, got %v, %v", record, err)
	}
	if record.Status != models.ImportStatusSucceeded || record.RecordCount != 1 {
		t.Errorf("Unexpected success record %+v", record)
	}
	if record.LinesRead != 3 || record.BlankLines != 1 || record.DroppedLines != 1 {
		t.Errorf("Unexpected line stats %+v", record)
	}

	list, _ := h.services.Import.ListImports(ctx, 10)
	if len(list) != 2 || list[0].ID != failed.ImportID {
		t.Errorf("Expected newest import first, got %v", list)
	}
	if list[0].ErrorKind != models.ErrorKindEmptyInput {
		t.Errorf("Expected empty_input in history, got %s", list[0].ErrorKind)
	}
}

func TestImport_IdempotencyKey(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	first, err := h.services.Import.Import(ctx, &models.ImportRequest{Text: "王大明\t1", IdempotencyKey: "key-1"})
	if err != nil {
		t.Fatal(err)
	}

	h.services.Roster.Reset(ctx)

	second, err := h.services.Import.Import(ctx, &models.ImportRequest{Text: "王大明\t1", IdempotencyKey: "key-1"})
	if err != nil {
		t.Fatal(err)
	}
	if second.ImportID != first.ImportID {
		t.Errorf("Expected replayed import %s, got %s", first.ImportID, second.ImportID)
	}
	if h.services.Roster.Count(ctx) != 6 {
		t.Error("Replayed import should not touch the roster")
	}
}

func TestImport_CancelledContext(t *testing.T) {
	h := newTestHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.services.Import.Import(ctx, &models.ImportRequest{Text: "a\t1"}); err == nil {
		t.Error("Expected error for cancelled context")
	}
	if h.services.Roster.Count(context.Background()) != 6 {
		t.Error("Roster should be untouched")
	}
}

func TestLookup_BlankQueryNotSearched(t *testing.T) {
	h := newTestHarness(t)

	for _, q := range []string{"", "   "} {
		result := h.services.Lookup.Search(context.Background(), q)
		if result.Searched || result.Found {
			t.Errorf("Expected blank query %q not to be searched, got %+v", q, result)
		}
	}
}

func TestRoster_ResetAfterImport(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	h.importText(t, "someone\t42")
	h.services.Roster.Reset(ctx)

	want := []models.Attendee{
		{Name: "王大明", Table: "1", Note: "主桌"},
		{Name: "陳小惠", Table: "3", Note: "女方親友"},
		{Name: "李志豪", Table: "5", Note: "大學同學"},
		{Name: "林雅婷", Table: "5", Note: "大學同學"},
		{Name: "張建國", Table: "10", Note: "公司同事"},
		{Name: "0912345678", Table: "10", Note: "公司同事(電話搜尋範例)"},
	}
	if got := h.services.Roster.Snapshot(ctx); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected seed roster, got %v", got)
	}
}

func TestRoster_ReplaceWithContact(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	errs, err := h.services.Roster.Replace(ctx, []models.Attendee{
		{Name: " 王大明 ", Table: "1", Contact: "0912-000-111"},
		{Name: "陳小惠", Table: "3"},
	})
	if err != nil || len(errs) != 0 {
		t.Fatalf("Expected replace to succeed, got %v, %v", errs, err)
	}

	result := h.services.Lookup.Search(ctx, "000-111")
	if !result.Found || result.Attendee.Name != "王大明" {
		t.Errorf("Expected contact match on 王大明, got %+v", result)
	}
}

func TestRoster_ReplaceRejectsInvalid(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	errs, err := h.services.Roster.Replace(ctx, []models.Attendee{
		{Name: "王大明", Table: "1"},
		{Name: "", Table: "3"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 1 || errs[0].Line != 2 {
		t.Errorf("Expected one error on entry 2, got %v", errs)
	}
	if !reflect.DeepEqual(h.services.Roster.Snapshot(ctx), models.DefaultRoster()) {
		t.Error("Roster should be untouched after rejected replace")
	}
}

func TestExport_TSVRoundTrip(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	var buf bytes.Buffer
	n, err := h.services.Export.Export(ctx, &buf, service.FormatTSV)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if n != 6 {
		t.Errorf("Expected 6 exported, got %d", n)
	}

	before := h.services.Roster.Snapshot(ctx)
	result := h.importText(t, buf.String())
	if result.RecordCount != 6 {
		t.Fatalf("Expected 6 re-imported, got %d", result.RecordCount)
	}
	if !reflect.DeepEqual(h.services.Roster.Snapshot(ctx), before) {
		t.Error("Round trip changed the roster")
	}
}

func TestRoster_ReplaceRejectsControlCharacters(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	errs, err := h.services.Roster.Replace(ctx, []models.Attendee{
		{Name: "Ann", Table: "1", Note: "row\tA"},
		{Name: "Bob", Table: "2", Note: "line1\nline2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 2 || errs[0].Line != 1 || errs[1].Line != 2 {
		t.Errorf("Expected note errors on entries 1 and 2, got %v", errs)
	}
	if !reflect.DeepEqual(h.services.Roster.Snapshot(ctx), models.DefaultRoster()) {
		t.Error("Roster should be untouched after rejected replace")
	}
}

func TestExport_TSVRoundTripAfterReplace(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	errs, err := h.services.Roster.Replace(ctx, []models.Attendee{
		{Name: "Smith, John", Table: "7", Note: "plus one, vegetarian"},
		{Name: "陳小惠", Table: "A3", Note: "女方親友，大學同學"},
		{Name: "Bob", Table: "2"},
	})
	if err != nil || len(errs) != 0 {
		t.Fatalf("Expected replace to succeed, got %v, %v", errs, err)
	}
	before := h.services.Roster.Snapshot(ctx)

	var buf bytes.Buffer
	if _, err := h.services.Export.Export(ctx, &buf, service.FormatTSV); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	h.services.Roster.Reset(ctx)
	result := h.importText(t, buf.String())
	if !result.OK || result.RecordCount != 3 {
		t.Fatalf("Expected 3 re-imported, got %+v", result)
	}
	if !reflect.DeepEqual(h.services.Roster.Snapshot(ctx), before) {
		t.Errorf("Round trip changed the roster: got %v, want %v", h.services.Roster.Snapshot(ctx), before)
	}
}

func TestExport_TSVOmitsContact(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	errs, err := h.services.Roster.Replace(ctx, []models.Attendee{
		{Name: "王大明", Table: "1", Contact: "0912-000-111"},
	})
	if err != nil || len(errs) != 0 {
		t.Fatalf("Expected replace to succeed, got %v, %v", errs, err)
	}

	var buf bytes.Buffer
	if _, err := h.services.Export.Export(ctx, &buf, service.FormatTSV); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if buf.String() != "王大明\t1\n" {
		t.Errorf("Expected contact to be left out of tsv, got %q", buf.String())
	}
}

func TestExport_CSV(t *testing.T) {
	h := newTestHarness(t)

	var buf bytes.Buffer
	if _, err := h.services.Export.Export(context.Background(), &buf, service.FormatCSV); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("Expected header + 6 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "name,table,note,contact" {
		t.Errorf("Unexpected header %v", rows[0])
	}
	if rows[1][0] != "王大明" || rows[1][1] != "1" {
		t.Errorf("Unexpected first row %v", rows[1])
	}
}

func TestExport_JSONFormats(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if _, err := h.services.Export.Export(ctx, &buf, service.FormatJSON); err != nil {
		t.Fatal(err)
	}
	var attendees []models.Attendee
	if err := json.Unmarshal(buf.Bytes(), &attendees); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !reflect.DeepEqual(attendees, models.DefaultRoster()) {
		t.Errorf("Unexpected JSON export %v", attendees)
	}

	buf.Reset()
	if _, err := h.services.Export.Export(ctx, &buf, service.FormatNDJSON); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Errorf("Expected 6 NDJSON lines, got %d", len(lines))
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"tsv", "CSV", "json", "ndjson"} {
		if _, err := service.ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", in, err)
		}
	}
	if _, err := service.ParseFormat("xlsx"); err == nil {
		t.Error("Expected error for xlsx")
	}
}

func TestImport_HistoryFailureDoesNotBlockImport(t *testing.T) {
	importRepo := mocks.NewMockImportRepository()
	importRepo.CreateError = errors.New("history unavailable")
	repos := &repository.Repositories{
		Roster: repository.NewRosterRepo(),
		Import: importRepo,
	}
	services := service.NewServices(repos, &config.Config{}, zerolog.Nop())

	result, err := services.Import.Import(context.Background(), &models.ImportRequest{Text: "王大明\t1"})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !result.OK || result.RecordCount != 1 {
		t.Errorf("Expected successful import, got %+v", result)
	}
	if importRepo.CreateCalls != 1 {
		t.Errorf("Expected one history write, got %d", importRepo.CreateCalls)
	}
	if repos.Roster.Count() != 1 {
		t.Errorf("Expected roster of 1, got %d", repos.Roster.Count())
	}
}

func TestImport_IdempotencyLookupErrorStillImports(t *testing.T) {
	importRepo := mocks.NewMockImportRepository()
	importRepo.GetError = errors.New("lookup failed")
	repos := &repository.Repositories{
		Roster: repository.NewRosterRepo(),
		Import: importRepo,
	}
	services := service.NewServices(repos, &config.Config{}, zerolog.Nop())

	result, err := services.Import.Import(context.Background(), &models.ImportRequest{Text: "a\t1\nb\t2", IdempotencyKey: "k"})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.RecordCount != 2 {
		t.Errorf("Expected 2 records, got %d", result.RecordCount)
	}
}
