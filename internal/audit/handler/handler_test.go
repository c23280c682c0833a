package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"tallyboard/internal/audit"
	"tallyboard/pkg/testutil"
)

type AuditHandlerSuite struct {
	suite.Suite
	store  *audit.InMemory
	router chi.Router
}

func TestAuditHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuditHandlerSuite))
}

func (s *AuditHandlerSuite) SetupTest() {
	s.store = audit.NewInMemory()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.store, logger)

	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *AuditHandlerSuite) seed(n int) {
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		s.Require().NoError(s.store.Append(ctx, &audit.Entry{
			StationID: int64(i),
			Action:    audit.ActionCreate,
			NewValue:  i * 10,
		}))
	}
}

func (s *AuditHandlerSuite) TestListRecent_NewestFirst() {
	s.seed(3)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/audit")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	entries := testutil.UnmarshalResponse[[]*audit.Entry](s.T(), rr)
	s.Require().Len(*entries, 3)
	s.Equal(int64(3), (*entries)[0].ID)
}

func (s *AuditHandlerSuite) TestListRecent_HonorsLimit() {
	s.seed(5)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/audit?limit=2")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	entries := testutil.UnmarshalResponse[[]*audit.Entry](s.T(), rr)
	s.Len(*entries, 2)
}

func (s *AuditHandlerSuite) TestListRecent_EmptyTrailIsEmptyArray() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/audit")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.JSONEq("[]", string(testutil.ReadBody(s.T(), rr)))
}

func (s *AuditHandlerSuite) TestListRecent_InvalidLimit() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/audit?limit=nope")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")

	req = testutil.NewRequest(s.T(), http.MethodGet, "/audit?limit=0")
	rr = testutil.DoRequest(s.router, req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}
