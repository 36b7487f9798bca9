package routers

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
)

const jwtSecret = "integration-secret"

type testEnv struct {
	t      *testing.T
	server *Server
	db     *gorm.DB
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	template := filepath.Join(t.TempDir(), "CompletionCertificate.png")
	require.NoError(t, imaging.Save(imaging.New(2000, 1414, color.White), template))

	cfg := &config.Config{
		JWTKey:                     jwtSecret,
		CorsOrigins:                []string{"http://localhost:5173"},
		CertificateTemplatePath:    template,
		CertificateDateFormat:      "1/2/2006",
		CertificateRequireApproval: true,
		UploadDir:                  t.TempDir(),
		BookCategories:             config.DefaultBookCategories,
	}
	logger, _ := test.NewNullLogger()
	db := database.OpenTest(t)

	server, err := NewServer(cfg, db, logger)
	require.NoError(t, err)
	return &testEnv{t: t, server: server, db: db, cfg: cfg}
}

func (e *testEnv) token(userID, role string) string {
	tok, err := middleware.GenerateJWT(jwtSecret, userID, role)
	require.NoError(e.t, err)
	return tok
}

func (e *testEnv) do(method, path, token string, body any) *http.Response {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.server.App.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) seedCourse(id, title string, lectures ...string) {
	content := make([]courseModels.Lecture, 0, len(lectures))
	for i, l := range lectures {
		content = append(content, courseModels.Lecture{LectureID: l, LectureTitle: "Lecture " + l, LectureOrder: i + 1})
	}
	course := courseModels.Course{
		ID:            id,
		CourseTitle:   title,
		Educator:      "edu-1",
		IsPublished:   true,
		CourseContent: datatypes.NewJSONType([]courseModels.Chapter{{ChapterID: "ch1", ChapterTitle: "Intro", ChapterOrder: 1, ChapterContent: content}}),
	}
	require.NoError(e.t, e.db.Create(&course).Error)
}

func TestCertificateWorkflow(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourse("C1", "Go Basics", "l1", "l2")
	educator := env.token("edu-1", middleware.RoleEducator)
	student := env.token("U1", middleware.RoleStudent)

	resp := env.do(fiber.MethodPost, "/api/certificate_request", "", map[string]any{
		"user_id": "U1", "course_id": "C1", "student_name": "Ada Lovelace", "progress": "100",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	assert.Equal(t, "Certificate request submitted.", created["message"])
	request := created["request"].(map[string]any)
	assert.Equal(t, "pending", request["status"])
	assert.Equal(t, false, request["certificate_issued"])
	requestID := request["id"].(string)

	resp = env.do(fiber.MethodGet, "/api/certificate_request/status?user_id=U1&course_id=C1", "", nil)
	assert.Equal(t, map[string]any{"certificate_issued": false}, decode(t, resp))

	resp = env.do(fiber.MethodGet, "/api/certificate_request/download?userId=U1&courseId=C1", "", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	approve := map[string]any{"requestId": requestID}
	resp = env.do(fiber.MethodPost, "/api/educator/approve-certificate", "", approve)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp = env.do(fiber.MethodPost, "/api/educator/approve-certificate", student, approve)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	for i := 0; i < 2; i++ {
		resp = env.do(fiber.MethodPost, "/api/educator/approve-certificate", educator, approve)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]any{"success": true, "message": "Certificate approved"}, decode(t, resp))
	}

	resp = env.do(fiber.MethodGet, "/api/certificate_request/status?user_id=U1&course_id=C1", "", nil)
	assert.Equal(t, map[string]any{"certificate_issued": true}, decode(t, resp))

	resp = env.do(fiber.MethodGet, "/api/certificate_request/download?userId=U1&courseId=C1", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `inline; filename="Ada Lovelace-Certificate.png"`, resp.Header.Get(fiber.HeaderContentDisposition))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 2000, img.Bounds().Dx())
	assert.Equal(t, 1414, img.Bounds().Dy())

	resp = env.do(fiber.MethodGet, "/api/certificate_request?user_id=U1&course_id=C1", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	view := decode(t, resp)
	assert.Equal(t, "Go Basics", view["course_name"])
	assert.Equal(t, "approved", view["status"])

	resp = env.do(fiber.MethodGet, "/api/certificate_request?user_id=U1", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Certificate request not found", decode(t, resp)["error"])

	resp = env.do(fiber.MethodGet, "/api/educator/certificate-requests?status=approved", educator, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["requests"], 1)

	resp = env.do(fiber.MethodPost, "/api/educator/decline-certificate", educator, map[string]any{"requestId": "missing"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, map[string]any{"success": false, "message": "Request not found"}, decode(t, resp))

	resp = env.do(fiber.MethodDelete, "/api/educator/certificate-request/"+requestID, educator, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(fiber.MethodGet, "/api/certificate_request/status?user_id=U1&course_id=C1", "", nil)
	assert.Equal(t, map[string]any{"certificate_issued": false}, decode(t, resp))
}

func TestCertificateRequestValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(fiber.MethodPost, "/api/certificate_request", "", map[string]any{"user_id": "U1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", decode(t, resp)["error"])

	resp = env.do(fiber.MethodPost, "/api/certificate_request", "", map[string]any{
		"user_id": "U1", "course_id": "C1", "student_name": "Ada 2", "progress": 120,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Invalid fields", body["error"])
	assert.Contains(t, body["fields"], "student_name")
	assert.Contains(t, body["fields"], "progress")

	payload := map[string]any{"user_id": "U1", "course_id": "C9", "student_name": "Ada", "progress": 40}
	resp = env.do(fiber.MethodPost, "/api/certificate_request", "", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Unknown Course", decode(t, resp)["request"].(map[string]any)["course_name"])

	resp = env.do(fiber.MethodPost, "/api/certificate_request", "", payload)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.do(fiber.MethodGet, "/api/certificate_request/status?user_id=U1", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(fiber.MethodGet, "/api/certificate_request/download?userId=U7&courseId=C7", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	text, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Certificate request not found", string(text))
}

func TestDownload_MissingTemplate(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Remove(env.cfg.CertificateTemplatePath))

	req := courseModels.CertificateRequest{UserID: "U1", CourseID: "C1", StudentName: "Ada", Progress: "100", Status: courseModels.StatusApproved}
	require.NoError(t, env.db.Create(&req).Error)

	resp := env.do(fiber.MethodGet, "/api/certificate_request/download?userId=U1&courseId=C1", "", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	text, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Certificate generation failed", string(text))
}

func TestCourseProgress(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourse("C1", "Go Basics", "l1", "l2")
	student := env.token("U1", middleware.RoleStudent)

	resp := env.do(fiber.MethodGet, "/api/course/C1", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Go Basics", decode(t, resp)["data"].(map[string]any)["courseTitle"])

	resp = env.do(fiber.MethodPost, "/api/user/get-course-progress", "", map[string]any{"courseId": "C1"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	update := func(lecture string) (int, map[string]any) {
		resp := env.do(fiber.MethodPost, "/api/user/update-course-progress", student, map[string]any{"courseId": "C1", "lectureId": lecture})
		body := decode(t, resp)
		return resp.StatusCode, body
	}

	status, body := update("l1")
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 50, body["data"].(map[string]any)["percent"])

	status, body = update("l1")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Lecture already completed", body["message"])

	status, _ = update("nope")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = update("l2")
	require.Equal(t, fiber.StatusOK, status)
	report := body["data"].(map[string]any)
	assert.EqualValues(t, 100, report["percent"])
	assert.Equal(t, true, report["eligible"])

	resp = env.do(fiber.MethodPost, "/api/user/get-course-progress", student, map[string]any{"courseId": "C1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, decode(t, resp)["data"].(map[string]any)["completed"])

	var record courseModels.CourseProgress
	require.NoError(t, env.db.Where("user_id = ? AND course_id = ?", "U1", "C1").First(&record).Error)
	assert.True(t, record.Completed)
}

func TestEducatorCourses(t *testing.T) {
	env := newTestEnv(t)
	educator := env.token("edu-9", middleware.RoleEducator)

	resp := env.do(fiber.MethodPost, "/api/educator/add-course", educator, map[string]any{
		"courseTitle": "Testing in Go",
		"courseContent": []map[string]any{{
			"chapterTitle":   "Basics",
			"chapterContent": []map[string]any{{"lectureId": "t1", "lectureTitle": "testing.T"}},
		}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	courseID := decode(t, resp)["data"].(map[string]any)["id"].(string)
	assert.NotEmpty(t, courseID)

	resp = env.do(fiber.MethodGet, "/api/educator/courses", educator, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["data"], 1)

	other := env.token("edu-2", middleware.RoleEducator)
	resp = env.do(fiber.MethodDelete, "/api/educator/delete-course/"+courseID, other, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.do(fiber.MethodDelete, "/api/educator/delete-course/"+courseID, educator, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBooks(t *testing.T) {
	env := newTestEnv(t)
	staff := env.token("admin-1", middleware.RoleAdmin)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range map[string]string{
		"bookName": "Clean Code", "bookAuthor": "Robert Martin", "bookPrice": "25",
		"availableStock": "3", "category": "Web develop",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("bookImage", "cover.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, imaging.New(4, 4, color.Black)))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/books", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+staff)
	resp, err := env.server.App.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	book := decode(t, resp)["data"].(map[string]any)
	image := book["bookImage"].(string)
	assert.True(t, strings.HasPrefix(image, "/uploads/"), image)

	resp = env.do(fiber.MethodGet, image, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(fiber.MethodGet, "/api/books?category=Web%20develop", "", nil)
	assert.Len(t, decode(t, resp)["data"], 1)

	resp = env.do(fiber.MethodGet, "/api/books/categories", "", nil)
	assert.Len(t, decode(t, resp)["data"], len(config.DefaultBookCategories))

	resp = env.do(fiber.MethodPut, "/api/books/1", staff, map[string]any{
		"bookName": "Clean Code", "bookAuthor": "Robert Martin", "bookPrice": 30,
		"availableStock": 0, "category": "Cooking",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = env.do(fiber.MethodDelete, "/api/books/1", env.token("U1", middleware.RoleStudent), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.do(fiber.MethodDelete, "/api/books/1", staff, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_, err = os.Stat(filepath.Join(env.cfg.UploadDir, filepath.Base(image)))
	assert.True(t, os.IsNotExist(err))

	resp = env.do(fiber.MethodGet, "/api/books/1", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(fiber.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}
