package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"assekura/internal/models"
	"assekura/internal/utils"
)

type fakeLeadStore struct {
	created    []*models.Lead
	statusByID map[int]string
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{statusByID: make(map[int]string)}
}

func (f *fakeLeadStore) Create(lead *models.Lead) error {
	lead.ID = len(f.created) + 1
	f.created = append(f.created, lead)
	return nil
}

func (f *fakeLeadStore) UpdateStatus(id int, status string) error {
	f.statusByID[id] = status
	return nil
}

func (f *fakeLeadStore) ListPaginated(limit, offset int) ([]*models.Lead, error) {
	return f.created, nil
}

func (f *fakeLeadStore) GetByReference(reference string) (*models.Lead, error) {
	for _, l := range f.created {
		if l.Reference == reference {
			return l, nil
		}
	}
	return nil, nil
}

type staticChecker map[string]bool

func (s staticChecker) IsVerified(phone string) (bool, error) { return s[phone], nil }

func newTestLeadService(store *fakeLeadStore, checker VerificationChecker, webhook *utils.WebhookClient) *LeadService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewLeadService(store, checker, webhook, nil, nil, nil, logger)
}

func TestSubmitRejectsUnverifiedPhone(t *testing.T) {
	store := newFakeLeadStore()
	svc := newTestLeadService(store, staticChecker{}, nil)

	err := svc.Submit(&models.Lead{Name: "Max Muster", Phone: "0157 1234567"})
	require.ErrorIs(t, err, ErrPhoneNotVerified)
	require.Empty(t, store.created)
}

func TestSubmitNormalizesAndPersists(t *testing.T) {
	store := newFakeLeadStore()
	checker := staticChecker{"+491571234567": true}

	hits := 0
	crm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer crm.Close()

	svc := newTestLeadService(store, checker, utils.NewWebhookClient(crm.URL, ""))

	lead := &models.Lead{Name: "Max Muster", Email: "max@example.com", Phone: "0157 1234567", InsuranceType: "bu"}
	require.NoError(t, svc.Submit(lead))

	require.Len(t, store.created, 1)
	require.Equal(t, "+491571234567", lead.Phone)
	require.NotEmpty(t, lead.Reference)
	require.Equal(t, 1, hits)
	require.Equal(t, models.LeadStatusForwarded, store.statusByID[lead.ID])
}

func TestSubmitSurvivesWebhookFailure(t *testing.T) {
	store := newFakeLeadStore()
	checker := staticChecker{"+491571234567": true}

	crm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer crm.Close()

	svc := newTestLeadService(store, checker, utils.NewWebhookClient(crm.URL, ""))

	lead := &models.Lead{Name: "Max Muster", Email: "max@example.com", Phone: "0157 1234567", InsuranceType: "kfz"}
	require.NoError(t, svc.Submit(lead), "the stored lead must survive delivery failure")
	require.Equal(t, models.LeadStatusFailed, store.statusByID[lead.ID])
}
