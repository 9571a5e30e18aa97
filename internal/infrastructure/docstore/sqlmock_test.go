package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return &GormStore{DB: db}, mock
}

func TestGormCollection_QueryErrorsPropagate(t *testing.T) {
	tests := []struct {
		name string
		mock func(mock sqlmock.Sqlmock)
		call func(c Collection) error
	}{
		{
			name: "find",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "documents"`).WillReturnError(errors.New("connection reset"))
			},
			call: func(c Collection) error {
				_, err := c.Find(context.Background(), Filter{"email": "a@x.com"}, 0)
				return err
			},
		},
		{
			name: "update",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT \* FROM "documents"`).WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			call: func(c Collection) error {
				n, err := c.UpdateOne(context.Background(), Filter{"id": "e1"}, Document{"title": "x"})
				if n != 0 {
					return errors.New("unexpected match count")
				}
				return err
			},
		},
		{
			name: "delete",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT \* FROM "documents"`).WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			call: func(c Collection) error {
				_, err := c.DeleteOne(context.Background(), Filter{"id": "e1"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := setupMockStore(t)
			tt.mock(mock)
			err := tt.call(store.Collection(Events))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "connection reset")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
