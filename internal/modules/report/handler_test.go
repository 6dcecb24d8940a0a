package report

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hoteldash/internal/domain"
	"hoteldash/internal/source"
	"hoteldash/internal/source/sourcetest"
)

func newReportRouter(src source.Source, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	protected := router.Group("/api/v1")
	protected.Use(func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	})
	NewHandler(newTestService(src)).RegisterRoutes(protected, "admin", "manager")
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func emptySource() *sourcetest.MockSource {
	src := new(sourcetest.MockSource)
	src.On("ListRooms", mock.Anything, mock.Anything, mock.Anything).Return(rooms(2, 1), nil).Maybe()
	src.On("ListReservations", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Reservation{}, nil).Maybe()
	src.On("ListPayments", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Payment{}, nil).Maybe()
	return src
}

func TestHandler_Dashboard(t *testing.T) {
	w := get(newReportRouter(emptySource(), "manager"), "/api/v1/reports?type=dashboard&fromDate=2024-03-01&toDate=2024-03-10")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"occupancyRate":50`)
	assert.Contains(t, body, `"daysInRange":10`)
	assert.Contains(t, body, `"recentReservations":[]`)
}

func TestHandler_DefaultsToDashboard(t *testing.T) {
	w := get(newReportRouter(emptySource(), "manager"), "/api/v1/reports")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fromDate":"2024-03-01"`)
	assert.Contains(t, w.Body.String(), `"toDate":"2024-03-10"`)
}

func TestHandler_Rooms(t *testing.T) {
	w := get(newReportRouter(emptySource(), "front_desk"), "/api/v1/reports?type=rooms")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
	assert.Contains(t, w.Body.String(), `{"key":"occupied","count":1}`)
}

func TestHandler_InvertedRangeIsNotAnError(t *testing.T) {
	w := get(newReportRouter(emptySource(), "manager"), "/api/v1/reports?fromDate=2024-03-10&toDate=2024-03-01")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"revenue":"0"`)
}

func TestHandler_ValidationErrors(t *testing.T) {
	router := newReportRouter(emptySource(), "manager")

	for _, path := range []string{
		"/api/v1/reports?type=occupancy",
		"/api/v1/reports?fromDate=2024-13-01",
		"/api/v1/reports?toDate=yesterday",
	} {
		w := get(router, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR", path)
	}
}

func TestHandler_UnauthorizedUpstream(t *testing.T) {
	src := new(sourcetest.MockSource)
	src.On("ListRooms", mock.Anything, mock.Anything, mock.Anything).Return(nil, source.ErrUnauthorized)

	w := get(newReportRouter(src, "manager"), "/api/v1/reports?type=rooms")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}

func TestHandler_Export(t *testing.T) {
	w := get(newReportRouter(emptySource(), "manager"), "/api/v1/reports/export")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "hotel-report_2024-03-01_2024-03-10.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestHandler_ExportRequiresRole(t *testing.T) {
	w := get(newReportRouter(emptySource(), "housekeeping"), "/api/v1/reports/export")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
