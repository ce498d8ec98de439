package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/go-kit/log"

	"campaignhub/internal/events"
	"campaignhub/internal/interfaces"
	"campaignhub/internal/models"
)

// memStore backs every fake repository so cross-table rules such as
// "applications only for recruiting campaigns" behave like the database.
type memStore struct {
	mu           sync.Mutex
	users        map[string]*models.User
	terms        map[string][]string
	advertisers  map[int64]*models.AdvertiserProfile
	influencers  map[int64]*models.InfluencerProfile
	campaigns    map[int64]*models.Campaign
	applications map[int64]*models.Application
	nextID       int64
	failWith     error
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[string]*models.User{},
		terms:        map[string][]string{},
		advertisers:  map[int64]*models.AdvertiserProfile{},
		influencers:  map[int64]*models.InfluencerProfile{},
		campaigns:    map[int64]*models.Campaign{},
		applications: map[int64]*models.Application{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type fakeUsers struct{ *memStore }

func (f fakeUsers) Create(_ context.Context, u *models.User, termsTypes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return interfaces.ErrAlreadyExists
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	f.terms[u.ID] = termsTypes
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

type fakeAdvertisers struct{ *memStore }

func (f fakeAdvertisers) Create(_ context.Context, p *models.AdvertiserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(p.BusinessRegistrationNumber) > 10 {
		return fmt.Errorf("business_registration_number %q exceeds VARCHAR(10)", p.BusinessRegistrationNumber)
	}
	for _, existing := range f.advertisers {
		if existing.UserID == p.UserID {
			return interfaces.ErrAlreadyExists
		}
		if existing.BusinessRegistrationNumber == p.BusinessRegistrationNumber {
			return interfaces.ErrDuplicateBusinessNumber
		}
	}
	p.ID = f.id()
	cp := *p
	f.advertisers[p.ID] = &cp
	return nil
}

func (f fakeAdvertisers) GetByUserID(_ context.Context, userID string) (*models.AdvertiserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.advertisers {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f fakeAdvertisers) IDByUserID(ctx context.Context, userID string) (int64, error) {
	p, err := f.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

type fakeInfluencers struct{ *memStore }

func (f fakeInfluencers) Create(_ context.Context, p *models.InfluencerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.influencers {
		if existing.UserID == p.UserID {
			return interfaces.ErrAlreadyExists
		}
	}
	p.ID = f.id()
	for i := range p.Channels {
		p.Channels[i].ID = f.id()
		p.Channels[i].InfluencerID = p.ID
	}
	cp := *p
	f.influencers[p.ID] = &cp
	return nil
}

func (f fakeInfluencers) GetByUserID(_ context.Context, userID string) (*models.InfluencerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.influencers {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f fakeInfluencers) IDByUserID(ctx context.Context, userID string) (int64, error) {
	p, err := f.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

type fakeCampaigns struct{ *memStore }

func (f fakeCampaigns) Create(_ context.Context, c *models.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.advertisers[c.AdvertiserID]; !ok {
		return interfaces.ErrForeignKey
	}
	c.ID = f.id()
	c.CreatedAt = time.Now()
	cp := *c
	f.campaigns[c.ID] = &cp
	return nil
}

func (f fakeCampaigns) GetByID(_ context.Context, id int64) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *c
	if adv, ok := f.advertisers[c.AdvertiserID]; ok {
		cp.BusinessName = adv.BusinessName
	}
	return &cp, nil
}

func (f fakeCampaigns) GetOwned(ctx context.Context, id, advertiserID int64) (*models.Campaign, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.AdvertiserID != advertiserID {
		return nil, interfaces.ErrNotFound
	}
	return c, nil
}

func (f fakeCampaigns) List(_ context.Context, filter interfaces.CampaignFilter) ([]models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Campaign{}
	for _, c := range f.campaigns {
		if filter.AdvertiserID != 0 && c.AdvertiserID != filter.AdvertiserID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f fakeCampaigns) TransitionStatus(_ context.Context, id int64, from, to models.CampaignStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok || c.Status != from {
		return &interfaces.StatusConflictError{Resource: "campaign", Expected: string(from)}
	}
	c.Status = to
	return nil
}

func (f fakeCampaigns) FinalizeSelection(_ context.Context, campaignID, advertiserID int64, ids []int64) (*models.SelectionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[campaignID]
	if !ok || c.AdvertiserID != advertiserID {
		return nil, interfaces.ErrNotFound
	}
	if c.Status != models.CampaignStatusClosed {
		return nil, &interfaces.StatusConflictError{Resource: "campaign", Expected: "closed", Current: string(c.Status)}
	}

	wanted := map[int64]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	result := &models.SelectionResult{CampaignID: campaignID, Selected: []int64{}}
	for _, a := range f.applications {
		if a.CampaignID == campaignID && a.Status == models.ApplicationStatusPending && wanted[a.ID] {
			result.Selected = append(result.Selected, a.ID)
		}
	}
	sort.Slice(result.Selected, func(i, j int) bool { return result.Selected[i] < result.Selected[j] })
	for _, a := range f.applications {
		if a.CampaignID != campaignID || a.Status != models.ApplicationStatusPending {
			continue
		}
		if wanted[a.ID] {
			a.Status = models.ApplicationStatusSelected
		} else {
			a.Status = models.ApplicationStatusRejected
			result.Rejected++
		}
	}
	c.Status = models.CampaignStatusSelected
	return result, nil
}

func (f fakeCampaigns) SetImageURL(_ context.Context, id int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	c.ImageURL = &url
	return nil
}

type fakeApplications struct{ *memStore }

func (f fakeApplications) Create(_ context.Context, a *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.campaigns[a.CampaignID]
	if !ok {
		return interfaces.ErrForeignKey
	}
	for _, existing := range f.applications {
		if existing.CampaignID == a.CampaignID && existing.InfluencerID == a.InfluencerID {
			return interfaces.ErrAlreadyExists
		}
	}
	if c.Status != models.CampaignStatusRecruiting {
		return &interfaces.StatusConflictError{Resource: "campaign", Expected: "recruiting"}
	}
	a.ID = f.id()
	a.CreatedAt = time.Now()
	cp := *a
	f.applications[a.ID] = &cp
	return nil
}

func (f fakeApplications) ListByInfluencer(_ context.Context, influencerID int64, status models.ApplicationStatus) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Application{}
	for _, a := range f.applications {
		if a.InfluencerID != influencerID || (status != "" && a.Status != status) {
			continue
		}
		cp := *a
		if c, ok := f.campaigns[a.CampaignID]; ok {
			cp.CampaignTitle = c.Title
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f fakeApplications) ListByCampaign(_ context.Context, campaignID int64) ([]models.ApplicationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.ApplicationDetail{}
	for _, a := range f.applications {
		if a.CampaignID != campaignID {
			continue
		}
		d := models.ApplicationDetail{Application: *a}
		if u := f.userOfInfluencer(a.InfluencerID); u != nil {
			d.InfluencerName, d.InfluencerEmail, d.InfluencerPhone = u.Name, u.Email, u.Phone
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f fakeApplications) GetByCampaignAndInfluencer(_ context.Context, campaignID, influencerID int64) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.applications {
		if a.CampaignID == campaignID && a.InfluencerID == influencerID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f fakeApplications) SelectedRecipients(_ context.Context, campaignID int64) ([]models.Recipient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Recipient{}
	for _, a := range f.applications {
		if a.CampaignID != campaignID || a.Status != models.ApplicationStatusSelected {
			continue
		}
		if u := f.userOfInfluencer(a.InfluencerID); u != nil {
			out = append(out, models.Recipient{ApplicationID: a.ID, Name: u.Name, Email: u.Email})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ApplicationID < out[j].ApplicationID })
	return out, nil
}

func (s *memStore) userOfInfluencer(influencerID int64) *models.User {
	p, ok := s.influencers[influencerID]
	if !ok {
		return nil
	}
	return s.users[p.UserID]
}

type sentMail struct {
	To, Subject, Body string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (r *recordingSender) Send(_ context.Context, to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type memImageStore struct {
	objects map[string][]byte
}

func (m *memImageStore) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = b
	return "https://cdn.example.com/" + key, nil
}

// harness wires every service over one memStore with a fixed clock.
type harness struct {
	store        *memStore
	mail         *recordingSender
	events       *recordingPublisher
	images       *memImageStore
	users        *UserService
	advertisers  *AdvertiserService
	influencers  *InfluencerService
	campaigns    *CampaignService
	applications *ApplicationService
	notifier     *SelectionNotifier
}

func newHarness(today string) *harness {
	store := newMemStore()
	logger := log.NewNopLogger()
	fixed, err := time.Parse(models.DateLayout, today)
	if err != nil {
		panic(err)
	}
	clock := Clock{Now: func() time.Time { return fixed.Add(10 * time.Hour) }, Location: time.UTC}

	h := &harness{
		store:  store,
		mail:   &recordingSender{},
		events: &recordingPublisher{},
		images: &memImageStore{},
	}
	users := fakeUsers{store}
	advertisers := fakeAdvertisers{store}
	influencers := fakeInfluencers{store}
	campaigns := fakeCampaigns{store}
	applications := fakeApplications{store}

	h.users = NewUserService(users, advertisers, influencers, NewTokenIssuer("test-secret", time.Hour), nil, logger)
	h.users.hashCost = 4
	h.advertisers = NewAdvertiserService(advertisers, nil, logger)
	h.influencers = NewInfluencerService(influencers, clock, nil, logger)
	h.campaigns = NewCampaignService(campaigns, advertisers, h.images, h.events, nil, logger)
	h.notifier = NewSelectionNotifier(applications, h.mail, nil, logger)
	h.applications = NewApplicationService(ApplicationServiceDeps{
		Applications: applications,
		Campaigns:    campaigns,
		Advertisers:  advertisers,
		Influencers:  influencers,
		Notifier:     h.notifier,
		Events:       h.events,
		Clock:        clock,
		Logger:       logger,
	})
	return h
}
