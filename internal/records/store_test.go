package records

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

var recordColumns = []string{"id", "sap_id", "product_name", "to_char", "document", "created_at", "updated_at"}

func TestInsertReturnsGeneratedFields(t *testing.T) {
	store, mock := newTestStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO records").
		WithArgs("SAP1", "Widget", "2024-01-01", []byte("%PDF-1.4 fake"), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	rec := &Record{SAPID: "SAP1", ProductName: "Widget", Date: "2024-01-01", Document: []byte("%PDF-1.4 fake")}
	require.NoError(t, store.Insert(context.Background(), rec))
	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, now, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMapsNoRows(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT id, sap_id, product_name").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRoundTripsDocumentBytes(t *testing.T) {
	store, mock := newTestStore(t)
	doc := []byte("%PDF-1.4 round trip")
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, sap_id, product_name").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(1, "SAP1", "Widget", "2024-01-01", doc, now, now))

	rec, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, doc, rec.Document)
	assert.Equal(t, "2024-01-01", rec.Date)
}

func TestUpdateZeroRowsIsNotFound(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec("UPDATE records").
		WithArgs("SAP1", "Widget", "2024-01-01", []byte("doc"), sqlmock.AnyArg(), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := &Record{ID: 99, SAPID: "SAP1", ProductName: "Widget", Date: "2024-01-01", Document: []byte("doc")}
	err := store.Update(context.Background(), rec)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectExec("UPDATE records").
		WithArgs("SAP2", "Gadget", "2024-02-02", []byte("new doc"), sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &Record{ID: 1, SAPID: "SAP2", ProductName: "Gadget", Date: "2024-02-02", Document: []byte("new doc")}
	require.NoError(t, store.Update(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReturnsAllRows(t *testing.T) {
	store, mock := newTestStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, sap_id, product_name").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(1, "SAP1", "Widget", "2024-01-01", []byte("a"), now, now).
			AddRow(2, "SAP2", "Gadget", "2024-02-02", []byte("b"), now, now))

	recs, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Widget", recs[0].ProductName)
	assert.Equal(t, "Gadget", recs[1].ProductName)
}
