package repair_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	httprepair "github.com/MrJamesThe3rd/fixnet/internal/http/repair"
	"github.com/MrJamesThe3rd/fixnet/internal/importer"
	"github.com/MrJamesThe3rd/fixnet/internal/repair"
)

type fixture struct {
	repo     *repair.MockRepository
	notifier *repair.MockNotifier
	router   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := repair.NewMockRepository(ctrl)
	notifier := repair.NewMockNotifier(ctrl)

	h := httprepair.NewHandler(repair.NewService(repo, notifier), importer.NewParser())

	r := chi.NewRouter()
	r.Route("/repair-request", h.SubmitRoutes)
	r.Route("/repair-requests", h.Routes)

	return &fixture{repo: repo, notifier: notifier, router: r}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(f *fixture)
		wantStatus int
		wantPrice  *string
		wantBody   string
	}

	tests := []testCase{
		{
			name: "EmptyName",
			body: `{"name":"","contact":"@ivan","device_brand":"Apple","device_model":"iPhone",` +
				`"problem_description":"экран"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid repair request: missing Name",
		},
		{
			name:       "MissingContact",
			body:       `{"name":"Иван","device_brand":"Apple","device_model":"iPhone","problem_description":"экран"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "missing required fields: contact",
		},
		{
			name: "WithPrice",
			body: `{"name":"Иван","contact":"+79990000000","device_brand":"Apple","device_model":"iPhone 14",` +
				`"problem_description":"экран разбит","estimated_price":"от 8 000 ₽"}`,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).Return(nil)
				f.notifier.EXPECT().Notify(gomock.Any())
			},
			wantStatus: http.StatusOK,
			wantPrice:  new("от 8 000 ₽"),
		},
		{
			name: "WithoutPrice",
			body: `{"name":"Иван","contact":"@ivan","device_brand":"Xiaomi","device_model":"Redmi 12",` +
				`"problem_description":"не заряжается"}`,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).Return(nil)
				f.notifier.EXPECT().Notify(gomock.Any())
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "BlankName",
			body: `{"name":"   ","contact":"@ivan","device_brand":"Apple","device_model":"iPhone",` +
				`"problem_description":"экран"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "StoreFailure",
			body: `{"name":"Иван","contact":"@ivan","device_brand":"Apple","device_model":"iPhone",` +
				`"problem_description":"экран"}`,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			rec := f.do(httptest.NewRequest(http.MethodPost, "/repair-request", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
				return
			}

			var got struct {
				ID             uuid.UUID `json:"id"`
				Name           string    `json:"name"`
				EstimatedPrice *string   `json:"estimated_price"`
				Timestamp      time.Time `json:"timestamp"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, "Иван", got.Name)
			assert.Equal(t, tt.wantPrice, got.EstimatedPrice)
			assert.False(t, got.Timestamp.IsZero())
		})
	}
}

func TestHandler_Create_NullPriceIsSerialized(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().Notify(gomock.Any())

	body := `{"name":"Иван","contact":"@ivan","device_brand":"Apple","device_model":"iPhone","problem_description":"экран"}`
	rec := f.do(httptest.NewRequest(http.MethodPost, "/repair-request", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"estimated_price":null`)
}

func TestHandler_List(t *testing.T) {
	f := newFixture(t)

	first := &repair.Request{ID: uuid.New(), Name: "Первый"}
	second := &repair.Request{ID: uuid.New(), Name: "Второй"}

	f.repo.EXPECT().ListRequests(gomock.Any()).Return([]*repair.Request{first, second}, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/repair-requests", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestHandler_Get(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		path       string
		setupMock  func(f *fixture)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Found",
			path: "/repair-requests/" + id.String(),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetRequest(gomock.Any(), id).Return(&repair.Request{ID: id}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "NotFound",
			path: "/repair-requests/" + id.String(),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().GetRequest(gomock.Any(), id).Return(nil, repair.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "InvalidID",
			path:       "/repair-requests/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			rec := f.do(httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func multipartCSV(t *testing.T, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "requests.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/repair-requests/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHandler_Import(t *testing.T) {
	f := newFixture(t)

	btx := repair.NewMockBatchTx(gomock.NewController(t))

	f.repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
	btx.EXPECT().
		CreateRequests(gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ context.Context, reqs []*repair.Request) error {
			require.NotNil(t, reqs[1].EstimatedPrice)
			assert.Equal(t, "от 2 500 ₽", *reqs[1].EstimatedPrice)
			return nil
		})
	btx.EXPECT().Commit().Return(nil)
	btx.EXPECT().Rollback().Return(nil)

	csv := "Имя;Контакт;Бренд;Модель;Проблема;Цена\n" +
		"Иван;+79990000000;Apple;iPhone 14;экран разбит;8000\n" +
		"Мария;@maria;Samsung;Galaxy S23;батарея садится;\n"

	rec := f.do(multipartCSV(t, csv))

	require.Equal(t, http.StatusCreated, rec.Code)

	var got struct {
		Imported int `json:"imported"`
		Requests []struct {
			EstimatedPrice *string `json:"estimated_price"`
		} `json:"requests"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 2, got.Imported)
	require.Len(t, got.Requests, 2)
	assert.Equal(t, "от 8 000 ₽", *got.Requests[0].EstimatedPrice)
}

func TestHandler_Import_Errors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		f := newFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/repair-requests/import", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

		rec := f.do(req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NoHeader", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(multipartCSV(t, "a;b;c\n1;2;3\n"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("RowMissingField", func(t *testing.T) {
		f := newFixture(t)

		csv := "Имя;Контакт;Бренд;Модель;Проблема;Цена\n" +
			"Иван;;Apple;iPhone 14;экран разбит;8000\n"

		rec := f.do(multipartCSV(t, csv))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "row 2")
	})
}
