package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// 单次上报的请求超时，上报在独立 goroutine 中进行，不会拖慢调用方。
const requestTimeout = 3 * time.Second

// Notifier 向可选的管理后台 webhook 上报注册事件。
// webhook 未配置时所有调用都是空操作；发送失败只记日志，绝不向调用方传播。
type Notifier struct {
	webhook string
	client  *http.Client
	wg      sync.WaitGroup
}

func New(webhook string) *Notifier {
	return &Notifier{
		webhook: webhook,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type registrationEvent struct {
	Type  string `json:"type"`
	Phone string `json:"phone"`
	TS    string `json:"ts"`
}

// Registration 异步上报一次新注册，调用立即返回。
func (n *Notifier) Registration(phone string, ts time.Time) {
	if n == nil || n.webhook == "" {
		return
	}
	body, err := json.Marshal(registrationEvent{
		Type:  "registration",
		Phone: phone,
		TS:    ts.Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		resp, err := n.client.Post(n.webhook, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Debug().Err(err).Msg("admin notify")
			return
		}
		_ = resp.Body.Close()
	}()
}

// Flush 等待所有在途上报完成，供测试与停服时使用。
func (n *Notifier) Flush() {
	n.wg.Wait()
}
