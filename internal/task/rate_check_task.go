package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"autoparts_erp_v1_202608/internal/service"
)

// RateCheckTask 定期检查供应商币种的汇率覆盖情况，
// 缺汇率的币种会让比价和核价直接失真，越早暴露越好
type RateCheckTask struct {
	CurrencyService *service.CurrencyService
	Cron            *cron.Cron
}

func NewRateCheckTask(currencyService *service.CurrencyService) *RateCheckTask {
	return &RateCheckTask{
		CurrencyService: currencyService,
		Cron:            cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *RateCheckTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次汇率覆盖检查...")
		t.checkJob(ctx)
	}()

	// 每天早上 9 点跑一次
	_, err := t.Cron.AddFunc("0 0 9 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		t.checkJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动汇率检查定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("汇率覆盖检查任务已启动 (每天 09:00)")
}

func (t *RateCheckTask) checkJob(ctx context.Context) {
	missing, err := t.CurrencyService.CheckRates(ctx)
	if err != nil {
		log.Printf("[Cron] 汇率覆盖检查失败: %v", err)
		return
	}

	if len(missing) == 0 {
		log.Println("[Cron] 汇率覆盖完整")
		return
	}
	log.Printf("[Cron] 警告: 以下币种缺少汇率: %v", missing)
}
