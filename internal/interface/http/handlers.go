package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lingua-hub/lingua-backend/internal/application/command"
	"github.com/lingua-hub/lingua-backend/internal/application/query"
	"github.com/lingua-hub/lingua-backend/internal/domain/activity"
	"github.com/lingua-hub/lingua-backend/internal/domain/shared"
	"github.com/lingua-hub/lingua-backend/internal/domain/story"
	"github.com/lingua-hub/lingua-backend/internal/domain/user"
	"github.com/lingua-hub/lingua-backend/internal/domain/word"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
	"github.com/lingua-hub/lingua-backend/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// Domain sentinel errors map onto HTTP statuses in one place so handlers stay
// thin.
// ══════════════════════════════════════════════════════════════════════════════

// writeDomainError maps a domain error onto the HTTP response.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsAlreadyExists(err):
		writeJSONError(w, http.StatusConflict, "already_exists", err.Error())
	case shared.IsNotEditable(err):
		writeJSONError(w, http.StatusUnprocessableEntity, "not_editable", err.Error())
	case shared.IsUnauthorized(err):
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		s.logger.Error("request failed",
			logger.Err(err),
			logger.String("path", r.URL.Path),
			logger.String("request_id", getRequestID(r.Context())))
		writeJSONError(w, http.StatusInternalServerError, "internal_server_error", "An unexpected error occurred")
	}
}

// decodeBody decodes the JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return false
	}
	return true
}

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE MODELS
// ══════════════════════════════════════════════════════════════════════════════

// userResponse is the wire shape of a user profile.
type userResponse struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	StreakCount      int     `json:"streak_count"`
	LastActivityDate *string `json:"last_activity_date"`
	DailyGoal        int     `json:"daily_goal"`
	CreatedAt        string  `json:"created_at"`
}

func toUserResponse(u *user.User) userResponse {
	resp := userResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		Email:       u.Email,
		StreakCount: u.StreakCount,
		DailyGoal:   u.DailyGoal,
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u.LastActivityDate != nil {
		d := clock.FormatDateStr(*u.LastActivityDate)
		resp.LastActivityDate = &d
	}
	return resp
}

// activityResponse is the wire shape of a daily activity record.
type activityResponse struct {
	Date               string `json:"date"`
	WordsAdded         int    `json:"words_added"`
	WordsPracticed     int    `json:"words_practiced"`
	WordsMastered      int    `json:"words_mastered"`
	StoriesRead        int    `json:"stories_read"`
	TimeSpent          int    `json:"time_spent"`
	DailyGoalCompleted bool   `json:"daily_goal_completed"`
}

func toActivityResponse(rec *activity.DailyActivity) activityResponse {
	return activityResponse{
		Date:               clock.FormatDateStr(rec.Date),
		WordsAdded:         rec.WordsAdded,
		WordsPracticed:     rec.WordsPracticed,
		WordsMastered:      rec.WordsMastered,
		StoriesRead:        rec.StoriesRead,
		TimeSpent:          rec.TimeSpent,
		DailyGoalCompleted: rec.DailyGoalCompleted,
	}
}

// wordResponse is the wire shape of a vocabulary entry.
type wordResponse struct {
	ID             string `json:"id"`
	Word           string `json:"word"`
	Meaning        string `json:"meaning"`
	Context        string `json:"context,omitempty"`
	Language       string `json:"language"`
	Confidence     int    `json:"confidence"`
	Learned        bool   `json:"learned"`
	TimesPracticed int    `json:"times_practiced"`
	DateAdded      string `json:"date_added"`
	LastPracticed  string `json:"last_practiced"`
}

func toWordResponse(w *word.Word) wordResponse {
	return wordResponse{
		ID:             w.ID.String(),
		Word:           w.Word,
		Meaning:        w.Meaning,
		Context:        w.Context,
		Language:       w.Language,
		Confidence:     w.Confidence,
		Learned:        w.Learned,
		TimesPracticed: w.TimesPracticed,
		DateAdded:      w.DateAdded.UTC().Format(time.RFC3339),
		LastPracticed:  w.LastPracticed.UTC().Format(time.RFC3339),
	}
}

// storyResponse is the wire shape of a story.
type storyResponse struct {
	ID         string   `json:"id"`
	AuthorID   string   `json:"author_id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Content    string   `json:"content,omitempty"`
	Language   string   `json:"language"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

func toStoryResponse(s *story.Story, includeContent bool) storyResponse {
	resp := storyResponse{
		ID:         s.ID.String(),
		AuthorID:   s.AuthorID.String(),
		Title:      s.Title,
		Slug:       s.Slug,
		Language:   s.Language,
		Difficulty: string(s.Difficulty),
		Tags:       s.Tags,
		CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
	}
	if includeContent {
		resp.Content = s.Content
	}
	return resp
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":    "Lingua Backend API",
		"version": "v1",
		"endpoints": map[string]string{
			"health":   "/health",
			"auth":     "/api/v1/auth",
			"words":    "/api/v1/words",
			"stories":  "/api/v1/stories",
			"activity": "/api/v1/activity/today",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"uptime": s.Uptime().String(),
	})
}

// handleLive handles the liveness probe endpoint.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// AUTH HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRegister handles POST /api/v1/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		DailyGoal int    `json:"daily_goal"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	res, err := s.deps.RegisterUserHandler.Handle(r.Context(), command.RegisterUserCommand{
		Username:  body.Username,
		Email:     body.Email,
		Password:  body.Password,
		DailyGoal: body.DailyGoal,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  toUserResponse(res.User),
		"token": res.Token,
	})
}

// handleLogin handles POST /api/v1/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	res, err := s.deps.LoginHandler.Handle(r.Context(), command.LoginCommand{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  toUserResponse(res.User),
		"token": res.Token,
	})
}

// handleLogout handles POST /api/v1/auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	err := s.deps.LogoutHandler.Handle(r.Context(), command.LogoutCommand{
		Token: currentToken(r.Context()),
	})
	// A token that is already gone still logs the client out.
	if err != nil && !shared.IsNotFound(err) && !shared.IsUnauthorized(err) {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE & STREAK HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetMe handles GET /api/v1/users/me
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	profile, err := s.deps.GetUserHandler.Handle(r.Context(), query.GetUserQuery{
		UserID: currentUserID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":           toUserResponse(profile.User),
		"active_today":   profile.ActiveToday,
		"streak_at_risk": profile.StreakAtRisk,
	})
}

// handleGetMyStats handles GET /api/v1/users/me/stats
func (s *Server) handleGetMyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.GetUserStatsHandler.Handle(r.Context(), query.GetUserStatsQuery{
		UserID:      currentUserID(r.Context()),
		HistoryDays: getQueryParamInt(r, "days", 30),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	history := make([]activityResponse, 0, len(stats.History))
	for _, rec := range stats.History {
		history = append(history, toActivityResponse(rec))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_words":    stats.TotalWords,
		"learned_words":  stats.LearnedWords,
		"streak_count":   stats.StreakCount,
		"daily_goal":     stats.DailyGoal,
		"goal_days_met":  stats.GoalDaysMet,
		"total_practice": stats.TotalPractice,
		"history":        history,
	})
}

// handleUpdateDailyGoal handles PUT /api/v1/users/me/daily-goal
func (s *Server) handleUpdateDailyGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DailyGoal int `json:"daily_goal"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	u, err := s.deps.UpdateDailyGoalHandler.Handle(r.Context(), command.UpdateDailyGoalCommand{
		UserID:    currentUserID(r.Context()),
		DailyGoal: body.DailyGoal,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// handleUpdateStreak handles POST /api/v1/users/me/streak
func (s *Server) handleUpdateStreak(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.UpdateStreakHandler.Handle(r.Context(), command.UpdateStreakCommand{
		UserID: currentUserID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	payload := map[string]interface{}{
		"user": toUserResponse(res.User),
	}
	if res.AlreadyUpdatedToday {
		payload["message"] = "Streak already updated today"
	}

	writeJSON(w, http.StatusOK, payload)
}

// ══════════════════════════════════════════════════════════════════════════════
// DAILY ACTIVITY HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetTodayActivity handles GET /api/v1/activity/today
func (s *Server) handleGetTodayActivity(w http.ResponseWriter, r *http.Request) {
	view, err := s.deps.GetDailyActivityHandler.Handle(r.Context(), query.GetDailyActivityQuery{
		UserID: currentUserID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activity":    toActivityResponse(view.Record),
		"goal_target": view.GoalTarget,
	})
}

// handleGetActivityHistory handles GET /api/v1/activity/history
func (s *Server) handleGetActivityHistory(w http.ResponseWriter, r *http.Request) {
	q := query.GetActivityHistoryQuery{UserID: currentUserID(r.Context())}

	if from := getQueryParam(r, "from", ""); from != "" {
		t, err := clock.ParseDate(from)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_date", "from must be YYYY-MM-DD")
			return
		}
		q.From = t
	}
	if to := getQueryParam(r, "to", ""); to != "" {
		t, err := clock.ParseDate(to)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_date", "to must be YYYY-MM-DD")
			return
		}
		q.To = t
	}

	records, err := s.deps.GetActivityHistoryHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	out := make([]activityResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toActivityResponse(rec))
	}

	writeJSON(w, http.StatusOK, out)
}

// handleRecordActivity handles POST /api/v1/activity
func (s *Server) handleRecordActivity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date           string `json:"date"`
		WordsAdded     int    `json:"words_added"`
		WordsPracticed int    `json:"words_practiced"`
		WordsMastered  int    `json:"words_mastered"`
		StoriesRead    int    `json:"stories_read"`
		TimeSpent      int    `json:"time_spent"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	cmd := command.RecordActivityCommand{
		UserID: currentUserID(r.Context()),
		Delta: activity.Delta{
			WordsAdded:     body.WordsAdded,
			WordsPracticed: body.WordsPracticed,
			WordsMastered:  body.WordsMastered,
			StoriesRead:    body.StoriesRead,
			TimeSpent:      body.TimeSpent,
		},
	}
	if body.Date != "" {
		t, err := clock.ParseDate(body.Date)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
		cmd.Date = t
	}

	res, err := s.deps.RecordActivityHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activity":       toActivityResponse(res.Record),
		"goal_completed": res.GoalCompleted,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// VOCABULARY HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListWords handles GET /api/v1/words
func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	words, err := s.deps.ListWordsHandler.Handle(r.Context(), query.ListWordsQuery{
		UserID:      currentUserID(r.Context()),
		Language:    getQueryParam(r, "language", ""),
		LearnedOnly: getQueryParamBool(r, "learned"),
		Limit:       getQueryParamInt(r, "limit", 0),
		Offset:      getQueryParamInt(r, "offset", 0),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	out := make([]wordResponse, 0, len(words))
	for _, entry := range words {
		out = append(out, toWordResponse(entry))
	}

	writeJSON(w, http.StatusOK, out)
}

// handleAddWord handles POST /api/v1/words
func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Word     string `json:"word"`
		Meaning  string `json:"meaning"`
		Context  string `json:"context"`
		Language string `json:"language"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	res, err := s.deps.AddWordHandler.Handle(r.Context(), command.AddWordCommand{
		UserID:   currentUserID(r.Context()),
		Word:     body.Word,
		Meaning:  body.Meaning,
		Context:  body.Context,
		Language: body.Language,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWordResponse(res.Word))
}

// handleGetWord handles GET /api/v1/words/{id}
func (s *Server) handleGetWord(w http.ResponseWriter, r *http.Request) {
	entry, err := s.deps.GetWordHandler.Handle(r.Context(), query.GetWordQuery{
		UserID: currentUserID(r.Context()),
		WordID: word.ID(r.PathValue("id")),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponse(entry))
}

// handleDeleteWord handles DELETE /api/v1/words/{id}
func (s *Server) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Words.Delete(r.Context(), currentUserID(r.Context()), word.ID(r.PathValue("id")))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handlePracticeWord handles POST /api/v1/words/{id}/practice
func (s *Server) handlePracticeWord(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Confidence *int `json:"confidence"`
		TimeSpent  int  `json:"time_spent"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	res, err := s.deps.PracticeWordHandler.Handle(r.Context(), command.PracticeWordCommand{
		UserID:     currentUserID(r.Context()),
		WordID:     word.ID(r.PathValue("id")),
		Confidence: body.Confidence,
		TimeSpent:  body.TimeSpent,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"word":           toWordResponse(res.Word),
		"became_learned": res.BecameLearned,
		"goal_completed": res.GoalCompleted,
	})
}

// handleMarkWordLearned handles PUT /api/v1/words/{id}/learned
func (s *Server) handleMarkWordLearned(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Learned bool `json:"learned"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	entry, err := s.deps.MarkWordLearnedHandler.Handle(r.Context(), command.MarkWordLearnedCommand{
		UserID:  currentUserID(r.Context()),
		WordID:  word.ID(r.PathValue("id")),
		Learned: body.Learned,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponse(entry))
}

// ══════════════════════════════════════════════════════════════════════════════
// STORY & LIBRARY HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListStories handles GET /api/v1/stories
func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := s.deps.ListStoriesHandler.Handle(r.Context(), query.ListStoriesQuery{
		Language:   getQueryParam(r, "language", ""),
		Difficulty: story.Difficulty(getQueryParam(r, "difficulty", "")),
		Limit:      getQueryParamInt(r, "limit", 0),
		Offset:     getQueryParamInt(r, "offset", 0),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	out := make([]storyResponse, 0, len(stories))
	for _, st := range stories {
		out = append(out, toStoryResponse(st, false))
	}

	writeJSON(w, http.StatusOK, out)
}

// handleGetStory handles GET /api/v1/stories/{slug}
func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request) {
	st, err := s.deps.GetStoryHandler.Handle(r.Context(), query.GetStoryQuery{
		Slug: r.PathValue("slug"),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStoryResponse(st, true))
}

// handleCreateStory handles POST /api/v1/stories
func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title      string   `json:"title"`
		Content    string   `json:"content"`
		Language   string   `json:"language"`
		Difficulty string   `json:"difficulty"`
		Tags       []string `json:"tags"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	st, err := s.deps.CreateStoryHandler.Handle(r.Context(), command.CreateStoryCommand{
		AuthorID:   currentUserID(r.Context()),
		Title:      body.Title,
		Content:    body.Content,
		Language:   body.Language,
		Difficulty: story.Difficulty(body.Difficulty),
		Tags:       body.Tags,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStoryResponse(st, true))
}

// handleSaveStory handles POST /api/v1/stories/{id}/save
func (s *Server) handleSaveStory(w http.ResponseWriter, r *http.Request) {
	entry, err := s.deps.SaveStoryHandler.Handle(r.Context(), command.SaveStoryCommand{
		UserID:  currentUserID(r.Context()),
		StoryID: story.ID(r.PathValue("id")),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"story_id": entry.StoryID.String(),
		"saved_at": entry.SavedAt.UTC().Format(time.RFC3339),
	})
}

// handleReadStory handles POST /api/v1/stories/{id}/read
func (s *Server) handleReadStory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TimeSpent int `json:"time_spent"`
	}
	// The body is optional for reads.
	if r.ContentLength > 0 && !decodeBody(w, r, &body) {
		return
	}

	res, err := s.deps.ReadStoryHandler.Handle(r.Context(), command.ReadStoryCommand{
		UserID:    currentUserID(r.Context()),
		StoryID:   story.ID(r.PathValue("id")),
		TimeSpent: body.TimeSpent,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	var lastRead *string
	if res.Entry.LastRead != nil {
		t := res.Entry.LastRead.UTC().Format(time.RFC3339)
		lastRead = &t
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"story_id":  res.Entry.StoryID.String(),
		"last_read": lastRead,
		"counted":   res.CountedTowardLedger,
	})
}

// handleListLibrary handles GET /api/v1/library
func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.ListLibraryHandler.Handle(r.Context(), query.ListLibraryQuery{
		UserID: currentUserID(r.Context()),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		item := map[string]interface{}{
			"story":    toStoryResponse(e.Story, false),
			"saved_at": e.Saved.SavedAt.UTC().Format(time.RFC3339),
		}
		if e.Saved.LastRead != nil {
			item["last_read"] = e.Saved.LastRead.UTC().Format(time.RFC3339)
		}
		out = append(out, item)
	}

	writeJSON(w, http.StatusOK, out)
}
