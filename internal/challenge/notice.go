package challenge

import (
	"fmt"

	"health_edu_backend/internal/catalog"
	"health_edu_backend/internal/model"
)

func activeNotice() *model.Notice {
	return &model.Notice{
		Title:       "Challenge Active",
		Description: "You've already started this challenge today!",
		Variant:     model.NoticeDefault,
	}
}

func startedNotice(tpl catalog.Challenge) *model.Notice {
	return &model.Notice{
		Title:       "Challenge Started!",
		Description: fmt.Sprintf("You've started the %s challenge.", tpl.Title),
		Variant:     model.NoticeDefault,
	}
}

func completedNotice(tpl catalog.Challenge) *model.Notice {
	return &model.Notice{
		Title:       "Challenge Completed! 🎉",
		Description: fmt.Sprintf("%s You earned %d points!", tpl.Feedback, tpl.Points),
		Variant:     model.NoticeDefault,
	}
}
