package controller

import (
	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct{}

func NewCatalogController() *CatalogController {
	return &CatalogController{}
}

// ModuleSummary is a module without its lesson body and quiz.
type ModuleSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	QuestionCount int    `json:"questionCount"`
}

// QuizQuestion hides the answer key until the quiz is submitted.
type QuizQuestion struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

type ModuleDetail struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Icon        string         `json:"icon"`
	Color       string         `json:"color"`
	Questions   []QuizQuestion `json:"questions"`
}

// ListModules godoc
// @Summary 学习模块列表
// @Tags 内容
// @Produce  json
// @Success 200 {object} util.Response{data=[]ModuleSummary}
// @Router /api/modules [get]
func (c *CatalogController) ListModules(ctx *gin.Context) {
	modules := catalog.Modules()
	out := make([]ModuleSummary, 0, len(modules))
	for _, m := range modules {
		out = append(out, ModuleSummary{
			ID:            m.ID,
			Title:         m.Title,
			Description:   m.Description,
			Icon:          m.Icon,
			Color:         m.Color,
			QuestionCount: len(m.Questions),
		})
	}
	util.Success(ctx, out)
}

// GetModule godoc
// @Summary 模块详情
// @Description Lesson content and quiz questions without the answer key. Unknown ids return empty data.
// @Tags 内容
// @Produce  json
// @Param id path string true "module id"
// @Success 200 {object} util.Response{data=ModuleDetail}
// @Router /api/modules/{id} [get]
func (c *CatalogController) GetModule(ctx *gin.Context) {
	m, ok := catalog.ModuleByID(ctx.Param("id"))
	if !ok {
		util.Success(ctx, nil)
		return
	}
	questions := make([]QuizQuestion, 0, len(m.Questions))
	for _, q := range m.Questions {
		questions = append(questions, QuizQuestion{ID: q.ID, Prompt: q.Prompt, Options: q.Options})
	}
	util.Success(ctx, ModuleDetail{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Content:     m.Content,
		Icon:        m.Icon,
		Color:       m.Color,
		Questions:   questions,
	})
}

// ListBadges godoc
// @Summary 徽章定义
// @Tags 内容
// @Produce  json
// @Success 200 {object} util.Response{data=[]catalog.BadgeDefinition}
// @Router /api/badges [get]
func (c *CatalogController) ListBadges(ctx *gin.Context) {
	util.Success(ctx, catalog.Badges())
}

// ListChallenges godoc
// @Summary 挑战模板
// @Tags 挑战
// @Produce  json
// @Success 200 {object} util.Response{data=[]catalog.Challenge}
// @Router /api/challenges [get]
func (c *CatalogController) ListChallenges(ctx *gin.Context) {
	util.Success(ctx, catalog.Challenges())
}
