package posts

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"blog-backend/middleware"
	"blog-backend/models"
	"blog-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

const (
	postID   = "123e4567-e89b-12d3-a456-426614174000"
	authorID = "abc12345-e89b-12d3-a456-426614174000"
	otherID  = "def67890-e89b-12d3-a456-426614174000"
)

func expectEmptyLikeSummary(mock sqlmock.Sqlmock, id string) {
	mock.ExpectQuery(`SELECT (.+) FROM "likes" WHERE post_id = \$1(.+)`).
		WithArgs(id, 3).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id", "created_at"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE post_id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
}

func TestGetPosts(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	longBody := strings.Repeat("a", 150)

	mock.ExpectQuery(`SELECT (.+) FROM "posts" ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "created_at", "author_id"}).
			AddRow(postID, "Test Post", longBody, time.Now(), authorID))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(authorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(authorID, "Ann"))
	expectEmptyLikeSummary(mock, postID)

	h := NewHandler(gormDB, testutils.TestConfig())
	r := testutils.SetupTestRouter()
	r.GET("/posts", h.GetPosts)

	req, _ := http.NewRequest(http.MethodGet, "/posts", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody []map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Len(t, respBody, 1)
	assert.Equal(t, "Test Post", respBody[0]["title"])
	// List views truncate the body
	assert.Equal(t, strings.Repeat("a", 100)+"...", respBody[0]["body"])
	assert.Equal(t, "Ann", respBody[0]["author"].(map[string]interface{})["name"])
}

func TestGetPostByID_NotFound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1(.+)`).
		WithArgs(postID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	h := NewHandler(gormDB, testutils.TestConfig())
	r := testutils.SetupTestRouter()
	r.GET("/posts/:id", h.GetPostByID)

	req, _ := http.NewRequest(http.MethodGet, "/posts/"+postID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var respBody map[string]map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Post with id "+postID+" not found", respBody["error"]["message"])
}

func TestCreatePost(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID))
	mock.ExpectCommit()
	expectEmptyLikeSummary(mock, postID)

	h := NewHandler(gormDB, testutils.TestConfig())
	r := testutils.SetupTestRouter()
	r.POST("/posts", func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{ID: authorID, Name: "Ann"})
		h.CreatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{
		"title": "Hello",
		"body":  "First post",
	})
	req, _ := http.NewRequest(http.MethodPost, "/posts", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Hello", respBody["title"])
	assert.Equal(t, "First post", respBody["body"])
	assert.Equal(t, "Ann", respBody["author"].(map[string]interface{})["name"])
}

func TestCreatePost_MissingTitle(t *testing.T) {
	gormDB, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	h := NewHandler(gormDB, testutils.TestConfig())
	r := testutils.SetupTestRouter()
	r.POST("/posts", func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{ID: authorID, Name: "Ann"})
		h.CreatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{
		"body": "First post",
	})
	req, _ := http.NewRequest(http.MethodPost, "/posts", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdatePost_NotAuthor(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1(.+)`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "created_at", "author_id"}).
			AddRow(postID, "Test Post", "body", time.Now(), authorID))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(authorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(authorID, "Ann"))

	h := NewHandler(gormDB, testutils.TestConfig())
	r := testutils.SetupTestRouter()
	r.PUT("/posts/:id", func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{ID: otherID, Name: "Bob"})
		h.UpdatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{
		"title": "New title",
		"body":  "New body",
	})
	req, _ := http.NewRequest(http.MethodPut, "/posts/"+postID, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)

	var respBody map[string]map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "You are not the author of this post", respBody["error"]["message"])
}

func TestUpdatePost_Success(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1(.+)`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "created_at", "author_id"}).
			AddRow(postID, "Old title", "old body", time.Now(), authorID))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(authorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(authorID, "Ann"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "posts" SET (.+) WHERE id = \$3`).
		WithArgs("New body", "New title", postID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectEmptyLikeSummary(mock, postID)

	h := NewHandler(gormDB, testutils.TestConfig())
	r := testutils.SetupTestRouter()
	r.PUT("/posts/:id", func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{ID: authorID, Name: "Ann"})
		h.UpdatePost(c)
	})

	jsonData, _ := json.Marshal(map[string]string{
		"title": "New title",
		"body":  "New body",
	})
	req, _ := http.NewRequest(http.MethodPut, "/posts/"+postID, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "New title", respBody["title"])
	assert.Equal(t, "New body", respBody["body"])
}

func TestDeletePost_Success(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "posts" WHERE id = \$1(.+)`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "created_at", "author_id"}).
			AddRow(postID, "Test Post", "body", time.Now(), authorID))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(authorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(authorID, "Ann"))
	expectEmptyLikeSummary(mock, postID)

	// The post's likes go away with it, in the same transaction
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE post_id = \$1`).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "posts" WHERE id = \$1`).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	h := NewHandler(gormDB, testutils.TestConfig())
	r := testutils.SetupTestRouter()
	r.DELETE("/posts/:id", func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{ID: authorID, Name: "Ann"})
		h.DeletePost(c)
	})

	req, _ := http.NewRequest(http.MethodDelete, "/posts/"+postID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Test Post", respBody["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
