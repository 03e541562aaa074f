//go:build integration

package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"athenaeum/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real Postgres database with the migrations
// applied. Point ATHENAEUM_TEST_DB_DSN at it and run with -tags integration.

func newTestRepository(t *testing.T) *repository {
	t.Helper()
	dsn := os.Getenv("ATHENAEUM_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("ATHENAEUM_TEST_DB_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	t.Cleanup(func() { db.Close() })
	return New(db)
}

var fixtureSeq int64

func uniqueSuffix() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), atomic.AddInt64(&fixtureSeq, 1))
}

func seedUser(t *testing.T, repo *repository) *data.User {
	t.Helper()
	suffix := uniqueSuffix()
	user := &data.User{
		Name:      "borrower-" + suffix,
		Email:     "borrower-" + suffix + "@example.com",
		Activated: true,
	}
	require.NoError(t, user.Password.Set("pa55word1234"))
	require.NoError(t, repo.RegisterUser(user))
	return user
}

func seedBook(t *testing.T, repo *repository, copies int32) *data.Book {
	t.Helper()
	book := &data.Book{
		Isbn:   "it-" + uniqueSuffix(),
		Title:  "Integration Test Book",
		Year:   2015,
		Copies: copies,
	}
	require.NoError(t, repo.CreateBook(book))
	t.Cleanup(func() { _ = repo.DeleteBook(book.Isbn) })
	return book
}

func TestBorrowBookConcurrentLastCopy(t *testing.T) {
	repo := newTestRepository(t)
	alice := seedUser(t, repo)
	bob := seedUser(t, repo)
	book := seedBook(t, repo, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, userID := range []int64{alice.ID, bob.ID} {
		wg.Add(1)
		go func(i int, userID int64) {
			defer wg.Done()
			_, _, errs[i] = repo.BorrowBook(userID, book.Isbn)
		}(i, userID)
	}
	wg.Wait()

	var succeeded, exhausted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrNoCopiesAvailable):
			exhausted++
		default:
			t.Fatalf("unexpected borrow error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, exhausted)

	got, err := repo.GetBook(book.Isbn)
	require.NoError(t, err)
	assert.Equal(t, int32(1), got.Lended)
}

func TestBorrowReturnRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	user := seedUser(t, repo)
	book := seedBook(t, repo, 2)

	entry := &data.WishlistEntry{UserID: user.ID, BookIsbn: book.Isbn}
	require.NoError(t, repo.CreateWishlistEntry(entry))

	borrowed, loan, err := repo.BorrowBook(user.ID, book.Isbn)
	require.NoError(t, err)
	assert.Equal(t, int32(1), borrowed.Lended)
	assert.Equal(t, int32(1), borrowed.RemainingCopies)
	assert.Equal(t, int32(1), loan.Number)
	assert.True(t, loan.ReturnOn.Equal(data.DueDate(loan.BorrowedOn)))

	wished, err := repo.WishlistEntryExists(user.ID, book.Isbn)
	require.NoError(t, err)
	assert.False(t, wished, "borrowing must remove the wishlist entry")

	returned, err := repo.ReturnBook(user.ID, book.Isbn, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(0), returned.Number)

	_, err = repo.GetLoan(user.ID, book.Isbn)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	got, err := repo.GetBook(book.Isbn)
	require.NoError(t, err)
	assert.Equal(t, int32(0), got.Lended)
}

func TestRepeatBorrowKeepsDueDate(t *testing.T) {
	repo := newTestRepository(t)
	user := seedUser(t, repo)
	book := seedBook(t, repo, 3)

	_, first, err := repo.BorrowBook(user.ID, book.Isbn)
	require.NoError(t, err)
	_, second, err := repo.BorrowBook(user.ID, book.Isbn)
	require.NoError(t, err)

	assert.Equal(t, int32(2), second.Number)
	assert.True(t, second.BorrowedOn.Equal(first.BorrowedOn))
	assert.True(t, second.ReturnOn.Equal(first.ReturnOn))
}

func TestReturnBookOverReturn(t *testing.T) {
	repo := newTestRepository(t)
	user := seedUser(t, repo)
	book := seedBook(t, repo, 2)

	_, _, err := repo.BorrowBook(user.ID, book.Isbn)
	require.NoError(t, err)

	_, err = repo.ReturnBook(user.ID, book.Isbn, 2)
	assert.ErrorIs(t, err, ErrOverReturn)

	got, err := repo.GetBook(book.Isbn)
	require.NoError(t, err)
	assert.Equal(t, int32(1), got.Lended, "a rejected return must not change the counter")
}

func TestLedgerSumMatchesLended(t *testing.T) {
	repo := newTestRepository(t)
	book := seedBook(t, repo, 5)
	users := []*data.User{seedUser(t, repo), seedUser(t, repo), seedUser(t, repo)}
	counts := []int{2, 1, 1}
	for i, user := range users {
		for j := 0; j < counts[i]; j++ {
			_, _, err := repo.BorrowBook(user.ID, book.Isbn)
			require.NoError(t, err)
		}
	}

	got, err := repo.GetBook(book.Isbn)
	require.NoError(t, err)

	loans, err := repo.GetAllLoans()
	require.NoError(t, err)
	var sum int32
	for _, loan := range loans {
		if loan.BookIsbn == book.Isbn {
			sum += loan.Number
		}
	}
	assert.Equal(t, int32(4), got.Lended)
	assert.Equal(t, got.Lended, sum)
}

func TestConcurrentBorrowAndReturnSamePair(t *testing.T) {
	repo := newTestRepository(t)
	user := seedUser(t, repo)
	book := seedBook(t, repo, 3)

	// One copy stays out for the whole test so every return finds a
	// ledger row to lock while the other goroutine is borrowing.
	_, _, err := repo.BorrowBook(user.ID, book.Isbn)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if _, _, err := repo.BorrowBook(user.ID, book.Isbn); err != nil {
					t.Errorf("borrow: %v", err)
					return
				}
				if _, err := repo.ReturnBook(user.ID, book.Isbn, 1); err != nil {
					t.Errorf("return: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	loan, err := repo.GetLoan(user.ID, book.Isbn)
	require.NoError(t, err)
	assert.Equal(t, int32(1), loan.Number)

	got, err := repo.GetBook(book.Isbn)
	require.NoError(t, err)
	assert.Equal(t, int32(1), got.Lended)
}
