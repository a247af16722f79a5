package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"legalplatform/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	return newMockDBWithMatcher(t, sqlmock.QueryMatcherRegexp)
}

func newMockDBWithMatcher(t *testing.T, matcher sqlmock.QueryMatcher) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestTxManager_CommitsAndNestedCallsJoin(t *testing.T) {
	db, mock := newMockDB(t)
	codeID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "one_time_codes" SET "used"=\$1 WHERE id = \$2 AND used = false`).
		WithArgs(true, codeID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "chat_records"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx := NewTxManager(db)
	codes := NewOneTimeCodeRepository(db)
	chats := NewChatRepository(db)

	err := tx.RunInTx(context.Background(), func(ctx context.Context) error {
		consumed, err := codes.MarkUsed(ctx, codeID)
		if err != nil {
			return err
		}
		if !consumed {
			return errors.New("expected code to be consumed")
		}
		return tx.RunInTx(ctx, func(ctx context.Context) error {
			return chats.Create(ctx, &entity.ChatRecord{
				ID:             uuid.New(),
				ConversationID: uuid.New(),
				SenderID:       uuid.New(),
				Kind:           entity.ChatMessage,
				Payload:        "iv:ct",
			})
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	failure := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "one_time_codes"`).WillReturnError(failure)
	mock.ExpectRollback()

	codes := NewOneTimeCodeRepository(db)
	err := NewTxManager(db).RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := codes.MarkUsed(ctx, uuid.New())
		return err
	})
	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOneTimeCodeRepository_MarkUsedLosesRace(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "one_time_codes" SET "used"=\$1 WHERE id = \$2 AND used = false`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	consumed, err := NewOneTimeCodeRepository(db).MarkUsed(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, consumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOneTimeCodeRepository_FindActiveForAccount(t *testing.T) {
	db, mock := newMockDB(t)
	accountID := uuid.New()
	codeID := uuid.New()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "one_time_codes" WHERE .*account_id = \$1 AND\s+used = false AND\s+expires_at > \$2.* ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "code_hash", "expires_at", "used", "created_at"}).
			AddRow(codeID.String(), accountID.String(), "hash", now.Add(10*time.Minute), false, now))

	code, err := NewOneTimeCodeRepository(db).FindActiveForAccount(context.Background(), accountID, now)
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, codeID, code.ID)
	assert.Equal(t, "hash", code.CodeHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	account, err := NewAccountRepository(db).FindByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, account)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByEmailForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	accountID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "email_verified", "active"}).
			AddRow(accountID.String(), "alice@example.com", "LocalPerson", false, false))

	account, err := NewAccountRepository(db).FindByEmailForUpdate(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, accountID, account.ID)
	assert.Equal(t, entity.RoleLocalPerson, account.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByIDPreloadsProfile(t *testing.T) {
	db, mock := newMockDB(t)
	accountID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).
			AddRow(accountID.String(), "bob@example.com", "Lawyer"))
	mock.ExpectQuery(`SELECT \* FROM "lawyer_profiles" WHERE "lawyer_profiles"."account_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "full_name", "status"}).
			AddRow(uuid.NewString(), accountID.String(), "Bob Khan", "Pending"))

	account, err := NewAccountRepository(db).FindByID(context.Background(), accountID)
	require.NoError(t, err)
	require.NotNil(t, account)
	require.NotNil(t, account.LawyerProfile)
	assert.Equal(t, "Bob Khan", account.LawyerProfile.FullName)
	assert.Equal(t, entity.LawyerPending, account.LawyerProfile.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`INSERT INTO "accounts"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := NewAccountRepository(db).Create(context.Background(), &entity.Account{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         entity.RoleLocalPerson,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

// excludingColumn matches like the regexp matcher but also fails when the
// query mentions column.
func excludingColumn(column string) sqlmock.QueryMatcher {
	return sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
		if strings.Contains(actualSQL, column) {
			return fmt.Errorf("query %q selects %s", actualSQL, column)
		}
		re, err := regexp.Compile(expectedSQL)
		if err != nil {
			return err
		}
		if !re.MatchString(actualSQL) {
			return fmt.Errorf("query %q does not match %q", actualSQL, expectedSQL)
		}
		return nil
	})
}

func TestDocumentRepository_ListByOwnerSkipsCiphertext(t *testing.T) {
	db, mock := newMockDBWithMatcher(t, excludingColumn("ciphertext"))
	ownerID := uuid.New()
	mock.ExpectQuery(`FROM "documents" WHERE owner_id = \$1 ORDER BY created_at DESC`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "file_name", "size_bytes"}).
			AddRow(uuid.NewString(), ownerID.String(), "will.txt", int64(23)))

	documents, err := NewDocumentRepository(db).ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, "will.txt", documents[0].FileName)
	assert.Equal(t, int64(23), documents[0].SizeBytes)
	assert.Nil(t, documents[0].Blob.Ciphertext)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "documents" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	document, err := NewDocumentRepository(db).FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, document)
}

func TestChatRepository_ListByConversationInOrder(t *testing.T) {
	db, mock := newMockDB(t)
	conversationID := uuid.New()
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "chat_records" WHERE conversation_id = \$1 ORDER BY created_at ASC, seq ASC`).
		WithArgs(conversationID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "is_secure", "kind", "payload", "created_at"}).
			AddRow(conversationID.String(), conversationID.String(), true, "MSG", "a:b", first).
			AddRow(uuid.NewString(), conversationID.String(), true, "FILE", "c:d", first.Add(time.Second)))

	records, err := NewChatRepository(db).ListByConversation(context.Background(), conversationID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Secure)
	assert.Equal(t, entity.ChatFile, records[1].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
