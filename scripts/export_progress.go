// 手动导出某个账户的学习进度（JSON），用于排查用户反馈或迁移数据
//
// 用法: go run scripts/export_progress.go -user 42 > progress.json

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"health_edu_backend/internal/config"
	"health_edu_backend/internal/model"
	"health_edu_backend/internal/store"
	"health_edu_backend/pkg/database"
	"health_edu_backend/pkg/logger"
)

type export struct {
	User       *model.User            `json:"user"`
	Challenges []*model.UserChallenge `json:"challenges"`
}

func main() {
	userID := flag.Uint("user", 0, "账户 ID")
	flag.Parse()
	if *userID == 0 {
		log.Fatal("必须指定 -user")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ctx := context.Background()
	remote := store.NewRemoteStore(store.NewRepositories(db), *userID)

	user, err := remote.LoadUser(ctx)
	if err != nil {
		log.Fatalf("读取进度失败: %v", err)
	}
	challenges, err := remote.LoadChallenges(ctx)
	if err != nil {
		log.Fatalf("读取挑战失败: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export{User: user, Challenges: challenges}); err != nil {
		log.Fatalf("写出失败: %v", err)
	}
}
