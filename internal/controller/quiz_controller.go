package controller

import (
	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/service"
	"health_edu_backend/internal/store"
	"health_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
	Provider    *store.Provider
}

func NewQuizController(quizService *service.QuizService, provider *store.Provider) *QuizController {
	return &QuizController{QuizService: quizService, Provider: provider}
}

// SubmitQuizRequest maps question ids to the chosen option index.
type SubmitQuizRequest struct {
	Answers map[string]int `json:"answers"`
}

// QuestionReview is shown after submission so the learner can see the explanations.
type QuestionReview struct {
	QuestionID    string `json:"questionId"`
	Selected      *int   `json:"selected"`
	CorrectAnswer int    `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
}

type QuizResponse struct {
	*service.QuizOutcome
	Review []QuestionReview `json:"review"`
}

// SubmitQuiz godoc
// @Summary 提交模块测验
// @Description Grades the answers, updates points and badges. Works signed in or in demo mode (X-Device-ID). Unknown modules return empty data.
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param id path string true "module id"
// @Param X-Device-ID header string false "device scope for demo mode"
// @Param body body SubmitQuizRequest true "answers"
// @Success 200 {object} util.Response{data=QuizResponse}
// @Failure 400 {object} util.Response
// @Router /api/modules/{id}/quiz [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Answers == nil {
		req.Answers = map[string]int{}
	}

	moduleID := ctx.Param("id")
	outcome, err := c.QuizService.SubmitQuiz(ctx.Request.Context(), progressStore(c.Provider, ctx), moduleID, req.Answers)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	if outcome == nil {
		util.Success(ctx, nil)
		return
	}

	module, _ := catalog.ModuleByID(moduleID)
	util.Success(ctx, QuizResponse{QuizOutcome: outcome, Review: reviewAnswers(module, req.Answers)})
}

func reviewAnswers(module catalog.Module, answers map[string]int) []QuestionReview {
	review := make([]QuestionReview, 0, len(module.Questions))
	for _, q := range module.Questions {
		r := QuestionReview{QuestionID: q.ID, CorrectAnswer: q.CorrectAnswer, Explanation: q.Explanation}
		if a, ok := answers[q.ID]; ok {
			selected := a
			r.Selected = &selected
			r.Correct = a == q.CorrectAnswer
		}
		review = append(review, r)
	}
	return review
}
