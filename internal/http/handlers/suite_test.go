package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	"github.com/Suyash1602/airBNB-clone/internal/http/handlers"
	sessionmw "github.com/Suyash1602/airBNB-clone/internal/http/middleware"
	"github.com/Suyash1602/airBNB-clone/internal/platform/auth"
	"github.com/Suyash1602/airBNB-clone/internal/service"
)

// ---------- Mocks ----------

type mockUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]*domain.User
	byID    map[int64]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		nextID:  1,
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int64]*domain.User),
	}
}

func (m *mockUserRepo) Create(_ context.Context, name, email, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return nil, domain.ErrDuplicateEmail
	}

	u := &domain.User{
		ID:           m.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.nextID++
	m.byEmail[email] = u
	m.byID[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

type mockPlaceRepo struct {
	mu     sync.Mutex
	nextID int64
	places map[int64]*domain.Place
}

func newMockPlaceRepo() *mockPlaceRepo {
	return &mockPlaceRepo{
		nextID: 1,
		places: make(map[int64]*domain.Place),
	}
}

func (m *mockPlaceRepo) Create(_ context.Context, ownerID int64, req *domain.PlaceRequest) (*domain.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := &domain.Place{
		ID:          m.nextID,
		OwnerID:     ownerID,
		Title:       req.Title,
		Address:     req.Address,
		Photos:      req.Photos,
		Description: req.Description,
		Perks:       req.Perks,
		ExtraInfo:   req.ExtraInfo,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		MaxGuests:   req.MaxGuests,
		Price:       req.Price,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.nextID++
	m.places[p.ID] = p
	cp := *p
	return &cp, nil
}

func (m *mockPlaceRepo) GetByID(_ context.Context, id int64) (*domain.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.places[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *mockPlaceRepo) List(_ context.Context) ([]domain.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Place
	for _, p := range m.places {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPlaceRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Place
	for _, p := range m.places {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPlaceRepo) Update(_ context.Context, id int64, req *domain.PlaceRequest) (*domain.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.places[id]
	if !ok {
		return nil, nil
	}
	p.Title = req.Title
	p.Address = req.Address
	p.Photos = req.Photos
	p.Description = req.Description
	p.Perks = req.Perks
	p.ExtraInfo = req.ExtraInfo
	p.CheckIn = req.CheckIn
	p.CheckOut = req.CheckOut
	p.MaxGuests = req.MaxGuests
	p.Price = req.Price
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

type mockBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
	places   *mockPlaceRepo
}

func newMockBookingRepo(places *mockPlaceRepo) *mockBookingRepo {
	return &mockBookingRepo{
		nextID:   1,
		bookings: make(map[int64]*domain.Booking),
		places:   places,
	}
}

func (m *mockBookingRepo) Create(_ context.Context, userID int64, req *domain.BookingRequest) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := &domain.Booking{
		ID:        m.nextID,
		PlaceID:   req.PlaceID,
		UserID:    userID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
		Name:      req.Name,
		Phone:     req.Phone,
		Price:     req.Price,
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.bookings[b.ID] = b
	cp := *b
	return &cp, nil
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			cp := *b
			if p, _ := m.places.GetByID(ctx, b.PlaceID); p != nil {
				cp.Place = p
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

type fakeDenyList struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newFakeDenyList() *fakeDenyList {
	return &fakeDenyList{revoked: make(map[string]bool)}
}

func (f *fakeDenyList) Revoke(_ context.Context, jti string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = true
	return nil
}

func (f *fakeDenyList) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked[jti], nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (noopPublisher) Close() error                                       { return nil }

// ---------- Test Setup ----------

type testEnv struct {
	server      *httptest.Server
	userRepo    *mockUserRepo
	placeRepo   *mockPlaceRepo
	bookingRepo *mockBookingRepo
	denyList    *fakeDenyList
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	userRepo := newMockUserRepo()
	placeRepo := newMockPlaceRepo()
	bookingRepo := newMockBookingRepo(placeRepo)
	denyList := newFakeDenyList()

	codec := auth.NewCodec("test-secret", time.Hour)
	hasher := auth.NewHasher()
	sessions := sessionmw.NewSessions(codec, denyList, "session", false)

	authService, err := service.NewAuthService(userRepo, hasher, codec, denyList, noopPublisher{})
	if err != nil {
		t.Fatalf("failed to build auth service: %v", err)
	}
	placeService := service.NewPlaceService(placeRepo, noopPublisher{})
	bookingService := service.NewBookingService(bookingRepo, placeRepo, noopPublisher{})

	authHandler := handlers.NewAuthHandler(authService, sessions)
	placesHandler := handlers.NewPlacesHandler(placeService, sessions)
	bookingsHandler := handlers.NewBookingsHandler(bookingService, sessions)

	r := chi.NewRouter()
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.With(sessions.Optional).Post("/logout", authHandler.Logout)
	r.With(sessions.Optional).Get("/profile", authHandler.Profile)
	r.Mount("/places", placesHandler.Routes())
	r.Mount("/bookings", bookingsHandler.Routes())
	r.With(sessions.Require).Get("/user-places", placesHandler.UserPlaces)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testEnv{
		server:      server,
		userRepo:    userRepo,
		placeRepo:   placeRepo,
		bookingRepo: bookingRepo,
		denyList:    denyList,
	}
}

// newClient returns an HTTP client with its own cookie jar, standing in for
// one browser session.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

// ---------- Helper Functions ----------

func postJSON(t *testing.T, client *http.Client, url string, data interface{}, expectedStatus int) *http.Response {
	t.Helper()

	resp, err := client.Post(url, "application/json", bytes.NewReader(jsonBytes(t, data)))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	if resp.StatusCode != expectedStatus {
		t.Fatalf("POST %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}
	return resp
}

func putJSON(t *testing.T, client *http.Client, url string, data interface{}, expectedStatus int) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(jsonBytes(t, data)))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("PUT %s failed: %v", url, err)
	}
	if resp.StatusCode != expectedStatus {
		t.Fatalf("PUT %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}
	return resp
}

func get(t *testing.T, client *http.Client, url string, expectedStatus int) *http.Response {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	if resp.StatusCode != expectedStatus {
		t.Fatalf("GET %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}
	return resp
}

func jsonBytes(t *testing.T, data interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// registerAndLogin creates an account and signs the client in, returning the
// registered identity.
func registerAndLogin(t *testing.T, env *testEnv, client *http.Client, name, email, password string) domain.UserInfo {
	t.Helper()

	resp := postJSON(t, client, env.server.URL+"/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, http.StatusCreated)
	resp.Body.Close()

	loginResp := postJSON(t, client, env.server.URL+"/login", map[string]string{
		"email": email, "password": password,
	}, http.StatusOK)

	var user domain.UserInfo
	decodeBody(t, loginResp, &user)
	return user
}
