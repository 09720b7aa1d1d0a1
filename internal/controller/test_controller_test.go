package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"feedback_backend/internal/model"
	"feedback_backend/internal/repository"
	"feedback_backend/internal/service"
	"feedback_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lessonStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type classroomAPI struct {
	clock   *testutil.Clock
	teacher http.Handler
	student http.Handler
}

func newClassroomAPI(t *testing.T) *classroomAPI {
	t.Helper()
	db := testutil.NewDB(t)
	clock := testutil.NewClock(lessonStart)
	users := repository.NewUserRepository(db)
	tests := service.NewTestService(repository.NewTestRepository(db), users).WithClock(clock.Now)
	sets := service.NewQuestionSetService(tests, service.NewSetPicker(nil))
	answers := service.NewAnswerService(repository.NewAnswerRepository(db), tests, sets)

	testCtrl := NewTestController(tests)
	setCtrl := NewQuestionSetController(sets)
	answerCtrl := NewAnswerController(answers)

	teacher := gin.New()
	teacher.Use(signedIn(testutil.CreateUser(t, db, "teacher", model.Teacher)))
	teacher.POST("/api/tests", testCtrl.CreateTest)
	teacher.GET("/api/tests", testCtrl.ListTests)
	teacher.DELETE("/api/tests/:id", testCtrl.DeleteTest)
	teacher.POST("/api/tests/:id/sets", setCtrl.CreateSet)
	teacher.GET("/api/tests/:id/answers", answerCtrl.ListAnswers)

	student := gin.New()
	student.Use(signedIn(testutil.CreateUser(t, db, "student", model.Student)))
	student.GET("/api/question-set", setCtrl.GetRandomSet)
	student.GET("/api/tests/:id/attempted", testCtrl.CheckAttempted)
	student.POST("/api/tests/:id/sets/:setId/answers", answerCtrl.SubmitAnswers)

	return &classroomAPI{clock: clock, teacher: teacher, student: student}
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestCreateTestRejectsBadWindow(t *testing.T) {
	api := newClassroomAPI(t)

	tests := []struct {
		name string
		req  TestRequest
	}{
		{"start in the past", TestRequest{Title: "Quiz", Topic: "Algebra", StartTime: lessonStart.Add(-time.Minute), EndTime: lessonStart.Add(time.Hour)}},
		{"end before start", TestRequest{Title: "Quiz", Topic: "Algebra", StartTime: lessonStart.Add(2 * time.Hour), EndTime: lessonStart.Add(time.Hour)}},
		{"end equals start", TestRequest{Title: "Quiz", Topic: "Algebra", StartTime: lessonStart.Add(time.Hour), EndTime: lessonStart.Add(time.Hour)}},
		{"missing title", TestRequest{Topic: "Algebra", StartTime: lessonStart.Add(time.Hour), EndTime: lessonStart.Add(2 * time.Hour)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := perform(t, api.teacher, http.MethodPost, "/api/tests", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.False(t, env.Success)
		})
	}
}

func TestClassroomFlow(t *testing.T) {
	api := newClassroomAPI(t)

	w, env := perform(t, api.teacher, http.MethodPost, "/api/tests", TestRequest{
		Title:     "Quiz 1",
		Topic:     "Fractions",
		StartTime: lessonStart.Add(time.Hour),
		EndTime:   lessonStart.Add(2 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	test := decode[model.Test](t, env.Data)

	api.clock.Advance(90 * time.Minute)
	w, _ = perform(t, api.student, http.MethodGet, "/api/question-set?testId="+test.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "a test without sets cannot serve one")

	w, env = perform(t, api.teacher, http.MethodPost, "/api/tests/"+test.ID+"/sets", QuestionSetRequest{
		Questions: []string{"What is 1/2 + 1/4?", "Simplify 6/8."},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	set := decode[model.QuestionSet](t, env.Data)

	w, env = perform(t, api.student, http.MethodGet, "/api/question-set?testId="+test.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	served := decode[struct {
		SetID     string   `json:"setId"`
		Questions []string `json:"questions"`
	}](t, env.Data)
	assert.Equal(t, set.ID, served.SetID)
	assert.Equal(t, set.Questions, served.Questions)

	w, env = perform(t, api.student, http.MethodGet, "/api/tests/"+test.ID+"/attempted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[struct{ Attempted bool }](t, env.Data).Attempted)

	submitPath := "/api/tests/" + test.ID + "/sets/" + set.ID + "/answers"
	w, _ = perform(t, api.student, http.MethodPost, submitPath, SubmitAnswersRequest{Answers: []string{"3/4", "3/4"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = perform(t, api.student, http.MethodPost, submitPath, SubmitAnswersRequest{Answers: []string{"3/4", "3/4"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = perform(t, api.student, http.MethodGet, "/api/tests/"+test.ID+"/attempted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[struct{ Attempted bool }](t, env.Data).Attempted)

	w, env = perform(t, api.teacher, http.MethodGet, "/api/tests/"+test.ID+"/answers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[struct{ Answers []model.Answer }](t, env.Data).Answers, 1)

	w, _ = perform(t, api.teacher, http.MethodDelete, "/api/tests/"+test.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteUnattemptedTest(t *testing.T) {
	api := newClassroomAPI(t)

	w, env := perform(t, api.teacher, http.MethodPost, "/api/tests", TestRequest{
		Title:     "Quiz 2",
		Topic:     "Decimals",
		StartTime: lessonStart.Add(time.Hour),
		EndTime:   lessonStart.Add(2 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	test := decode[model.Test](t, env.Data)

	w, _ = perform(t, api.teacher, http.MethodDelete, "/api/tests/"+test.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = perform(t, api.teacher, http.MethodGet, "/api/tests", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[struct{ Tests []model.Test }](t, env.Data).Tests)

	w, _ = perform(t, api.student, http.MethodGet, "/api/question-set?testId="+test.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
