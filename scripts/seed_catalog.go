// 手动触发示例课程目录写入
//
// 正常情况下应用启动时会在课程表为空时自动播种。
// 此脚本仅用于手动触发，例如清库后需要重新生成可浏览的目录时。
//
// 用法: go run scripts/seed_catalog.go

package main

import (
	"log"
	"os"

	"learnhub_backend/internal/config"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("手动触发课程目录播种...")
	if err := database.SeedCatalog(db); err != nil {
		log.Fatalf("播种失败: %v", err)
	}
	log.Println("完成！")
}
