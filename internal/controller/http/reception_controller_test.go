package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medpoint/reception/internal/model"
	"github.com/medpoint/reception/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Хранилища в памяти для тестов маршрутов. Create повторяет
// уникальное ограничение БД на тройку (врач, дата, слот).
type memReceptionStore struct {
	receptions []*model.Reception
	nextID     int64
}

func (m *memReceptionStore) Create(_ context.Context, reception *model.Reception) error {
	for _, r := range m.receptions {
		if r.DoctorID == reception.DoctorID && r.Date.Equal(reception.Date) && r.TimeSlot == reception.TimeSlot {
			return model.ErrReceptionExists
		}
	}
	m.nextID++
	reception.ID = m.nextID
	reception.CreatedAt = time.Now()
	stored := *reception
	m.receptions = append(m.receptions, &stored)
	return nil
}

func (m *memReceptionStore) Exists(_ context.Context, doctorID int64, date time.Time, timeSlot int) (bool, error) {
	for _, r := range m.receptions {
		if r.DoctorID == doctorID && r.Date.Equal(date) && r.TimeSlot == timeSlot {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReceptionStore) GetBookedSlots(_ context.Context, doctorID int64, date time.Time) ([]int, error) {
	var slots []int
	for _, r := range m.receptions {
		if r.DoctorID == doctorID && r.Date.Equal(date) {
			slots = append(slots, r.TimeSlot)
		}
	}
	sort.Ints(slots)
	return slots, nil
}

func (m *memReceptionStore) GetByDate(_ context.Context, date time.Time) ([]*model.Reception, error) {
	var receptions []*model.Reception
	for _, r := range m.receptions {
		if r.Date.Equal(date) {
			receptions = append(receptions, r)
		}
	}
	return receptions, nil
}

type memDoctorStore struct {
	doctors map[int64]*model.Doctor
	nextID  int64
}

func newMemDoctorStore() *memDoctorStore {
	return &memDoctorStore{doctors: make(map[int64]*model.Doctor)}
}

func (m *memDoctorStore) Create(_ context.Context, doctor *model.Doctor) error {
	m.nextID++
	doctor.ID = m.nextID
	stored := *doctor
	m.doctors[doctor.ID] = &stored
	return nil
}

func (m *memDoctorStore) GetByID(_ context.Context, id int64) (*model.Doctor, error) {
	return m.doctors[id], nil
}

func (m *memDoctorStore) List(_ context.Context) ([]*model.Doctor, error) {
	var doctors []*model.Doctor
	for _, d := range m.doctors {
		doctors = append(doctors, d)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Surname < doctors[j].Surname })
	return doctors, nil
}

func (m *memDoctorStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.doctors[id]; !ok {
		return model.ErrDoctorNotFound
	}
	delete(m.doctors, id)
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *service.ReceptionService, *model.Doctor) {
	t.Helper()

	receptionStore := &memReceptionStore{}
	doctorStore := newMemDoctorStore()

	doctor := &model.Doctor{Name: "Иван", Surname: "Александров", Patronymic: "Петрович"}
	require.NoError(t, doctorStore.Create(context.Background(), doctor))

	logger := zap.NewNop()
	receptionService := service.NewReceptionService(receptionStore, doctorStore, nil, logger)
	doctorService := service.NewDoctorService(doctorStore, logger)

	return NewRouter(receptionService, doctorService, "test", logger), receptionService, doctor
}

// nextWeekday возвращает ближайший будущий день недели (не сегодня)
func nextWeekday(from time.Time, weekday time.Weekday) time.Time {
	d := from.AddDate(0, 0, 1)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func freeTimeURL(doctorID int64, date time.Time) string {
	return fmt.Sprintf("/reception/get-free-time-choices?doctor_id=%d&date=%s",
		doctorID, date.Format(model.DateLayout))
}

func TestFreeTimeChoices_PartiallyBooked(t *testing.T) {
	router, receptionService, doctor := newTestRouter(t)
	monday := nextWeekday(time.Now(), time.Monday)

	// Понедельник занят с 9:00 до 13:00
	for slot := 0; slot <= 3; slot++ {
		_, err := receptionService.CreateReception(
			context.Background(), doctor.ID, monday, slot, "Иванов Иван Иванович")
		require.NoError(t, err)
	}

	w := doRequest(router, http.MethodGet, freeTimeURL(doctor.ID, monday), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(
		t,
		`{"free_time":[[4,"13:00"],[5,"14:00"],[6,"15:00"],[7,"16:00"],[8,"17:00"]]}`,
		w.Body.String(),
	)
}

func TestFreeTimeChoices_NoBookings(t *testing.T) {
	router, _, doctor := newTestRouter(t)
	tuesday := nextWeekday(time.Now(), time.Tuesday)

	w := doRequest(router, http.MethodGet, freeTimeURL(doctor.ID, tuesday), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(
		t,
		`{"free_time":[[0,"09:00"],[1,"10:00"],[2,"11:00"],[3,"12:00"],[4,"13:00"],[5,"14:00"],[6,"15:00"],[7,"16:00"],[8,"17:00"]]}`,
		w.Body.String(),
	)
}

func TestFreeTimeChoices_AllBooked(t *testing.T) {
	router, receptionService, doctor := newTestRouter(t)
	tuesday := nextWeekday(time.Now(), time.Tuesday)

	for slot := 0; slot <= 8; slot++ {
		_, err := receptionService.CreateReception(
			context.Background(), doctor.ID, tuesday, slot, "Иванов Иван Иванович")
		require.NoError(t, err)
	}

	w := doRequest(router, http.MethodGet, freeTimeURL(doctor.ID, tuesday), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"free_time":[]}`, w.Body.String())
}

func TestFreeTimeChoices_BadRequest(t *testing.T) {
	router, _, doctor := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/reception/get-free-time-choices?doctor_id=abc&date=01.01.2030", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet,
		fmt.Sprintf("/reception/get-free-time-choices?doctor_id=%d&date=2030-01-01", doctor.ID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func createReceptionBody(doctorID int64, date time.Time, slot int, patient string) string {
	return fmt.Sprintf(`{"doctor_id":%d,"date":%q,"time":%d,"patient_name":%q}`,
		doctorID, date.Format(model.DateLayout), slot, patient)
}

func TestCreateReceptionHandler(t *testing.T) {
	router, _, doctor := newTestRouter(t)
	monday := nextWeekday(time.Now(), time.Monday)

	w := doRequest(router, http.MethodPost, "/reception/new",
		createReceptionBody(doctor.ID, monday, 0, "Иванов Иван Иванович"))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID          int64  `json:"id"`
		Date        string `json:"date"`
		Time        int    `json:"time"`
		VerboseTime string `json:"verbose_time"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, monday.Format(model.DateLayout), resp.Date)
	assert.Equal(t, 0, resp.Time)
	assert.Equal(t, "09:00", resp.VerboseTime)
}

func TestCreateReceptionHandler_Duplicate(t *testing.T) {
	router, _, doctor := newTestRouter(t)
	monday := nextWeekday(time.Now(), time.Monday)

	w := doRequest(router, http.MethodPost, "/reception/new",
		createReceptionBody(doctor.ID, monday, 0, "Иванов Иван Иванович"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/reception/new",
		createReceptionBody(doctor.ID, monday, 0, "Петров Александр Дмитриевич"))

	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "already_booked", resp["kind"])
	assert.Equal(t, "A booking with fields Doctor, Date and Time already exists.", resp["error"])
}

func TestCreateReceptionHandler_DayOff(t *testing.T) {
	router, _, doctor := newTestRouter(t)
	saturday := nextWeekday(time.Now(), time.Saturday)

	w := doRequest(router, http.MethodPost, "/reception/new",
		createReceptionBody(doctor.ID, saturday, 0, "Иванов Иван Иванович"))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "day_off", resp["kind"])
	assert.Equal(t,
		fmt.Sprintf("Selected date %s is a day off.", saturday.Format(model.DateLayout)),
		resp["error"])
}

func TestCreateReceptionHandler_PastDate(t *testing.T) {
	router, _, doctor := newTestRouter(t)
	monday15042013 := time.Date(2013, 4, 15, 0, 0, 0, 0, time.Local)

	w := doRequest(router, http.MethodPost, "/reception/new",
		createReceptionBody(doctor.ID, monday15042013, 0, "Иванов Иван Иванович"))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "past_date", resp["kind"])
	assert.Equal(t, "Selected date 15.04.2013 has already passed.", resp["error"])
}

func TestCreateReceptionHandler_UnknownSlot(t *testing.T) {
	router, _, doctor := newTestRouter(t)
	tuesday := nextWeekday(time.Now(), time.Tuesday)

	w := doRequest(router, http.MethodPost, "/reception/new",
		createReceptionBody(doctor.ID, tuesday, 999, "Иванов Иван Иванович"))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unknown_slot", resp["kind"])
}

func TestCreateReceptionHandler_UnknownDoctor(t *testing.T) {
	router, _, _ := newTestRouter(t)
	monday := nextWeekday(time.Now(), time.Monday)

	w := doRequest(router, http.MethodPost, "/reception/new",
		createReceptionBody(777, monday, 0, "Иванов Иван Иванович"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReceptionHandler_MissingFields(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/reception/new", `{"doctor_id":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
}
