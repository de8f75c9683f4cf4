package dashboard

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dreami/internal/analytics"
)

// Server is the read-only analytics dashboard. Access requires the
// shared-secret token as a query parameter; there is no rotation and no
// per-user scoping.
type Server struct {
	engine *gin.Engine
	store  analytics.Store
	token  string
}

func New(store analytics.Store, token string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(template.Must(template.New("dashboard.html").Parse(dashboardTemplate)))

	s := &Server{engine: engine, store: store, token: token}

	authed := engine.Group("/", s.tokenAuth())
	authed.GET("/", s.renderDashboard)
	authed.GET("/api/stats", s.statsJSON)

	return s
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) tokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Необходим токен доступа для просмотра статистики",
			})
			return
		}
		if token != s.token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Неверный токен доступа",
			})
			return
		}
		c.Next()
	}
}

func (s *Server) renderDashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", BuildView(s.store, time.Now()))
}

func (s *Server) statsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, BuildView(s.store, time.Now()))
}

const dashboardTemplate = `<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8">
<title>Dream Bot Analytics</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #f7f7fb; }
h1 { color: #4a3b8c; }
table { border-collapse: collapse; margin-top: 1em; }
th, td { border: 1px solid #ccc; padding: 6px 12px; text-align: right; }
th { background: #eceaf6; }
.cards { display: flex; gap: 1em; flex-wrap: wrap; }
.card { background: #fff; border-radius: 8px; padding: 1em 1.5em; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
</style>
</head>
<body>
<h1>🌙 Dream Bot — {{.CurrentMonth}}</h1>
<div class="cards">
  <div class="card">🌟 Всего снов: <b>{{.Monthly.TotalDreams}}</b></div>
  <div class="card">👥 Пользователей: <b>{{.Monthly.TotalUsers}}</b></div>
  <div class="card">🗣 Голосовых: <b>{{.Monthly.VoiceMessages}}</b> ({{.VoicePercentage}}%)</div>
  <div class="card">✍️ Текстовых: <b>{{.Monthly.TextMessages}}</b> ({{.TextPercentage}}%)</div>
  <div class="card">🔢 Токенов: <b>{{.Monthly.TokensUsed}}</b> (в среднем {{.AvgTokensPerDream}} на сон)</div>
  <div class="card">❌ Ошибок: <b>{{.Monthly.Errors}}</b> ({{.ErrorRate}}%)</div>
  <div class="card">💰 Оценка затрат: <b>${{.EstimatedCost}}</b></div>
</div>
<h2>Последние 7 дней</h2>
<table>
<tr><th>Дата</th><th>Снов</th><th>Голосовых</th><th>Текстовых</th><th>Токенов</th><th>Ошибок</th></tr>
{{range .Daily}}
<tr><td>{{.Date}}</td><td>{{.TotalDreams}}</td><td>{{.VoiceMessages}}</td><td>{{.TextMessages}}</td><td>{{.TokensUsed}}</td><td>{{.Errors}}</td></tr>
{{end}}
</table>
</body>
</html>`
