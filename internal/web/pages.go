package web

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// 两个营销页共用的样式，原样保留桌面站的视觉。
const pageCSS = `
:root {
  --bg-start: #1a0000; --bg-end: #5a0f0f;
  --text: #ff4444; --muted: #b33a3a; --error: #ff1a1a;
  --button-bg: #2a0000; --button-border: #aa2b2b;
}
html, body {
  height: 100%; margin: 0;
  background: linear-gradient(180deg, var(--bg-start), var(--bg-end));
  color: var(--text);
  font-family: system-ui, -apple-system, Segoe UI, Roboto, Ubuntu, Cantarell, "Noto Sans", "Helvetica Neue", Arial, sans-serif;
}
.wrap { max-width: 720px; margin: 0 auto; padding: 28px; }
header { text-align: center; margin: 40px 0 24px; }
.brand { font-weight: 900; font-size: clamp(40px, 8vw, 84px); color: var(--error); text-transform: uppercase; }
.tagline { margin-top: 8px; font-size: clamp(16px, 2.5vw, 22px); color: var(--muted); }
.card { border: 1px solid rgba(255,68,68,0.2); background: rgba(0,0,0,0.2); border-radius: 12px; padding: 20px; backdrop-filter: blur(2px); }
.btn { display: inline-flex; align-items: center; justify-content: center; gap: 10px; padding: 12px 14px; border-radius: 10px; border: 1px solid var(--button-border); background: var(--button-bg); color: var(--text); text-decoration: none; font-weight: 700; }
.btn:hover { border-color: var(--error); }
footer { margin: 36px 0 20px; text-align: center; color: var(--muted); font-size: 13px; }
.progress { margin-top: 12px; height: 8px; background: rgba(255,68,68,0.15); border-radius: 8px; overflow: hidden; }
.bar { width: 0%; height: 100%; background: var(--error); transition: width 0.2s ease; }
.bad-signal { display: flex; align-items: center; gap: 16px; margin-bottom: 18px; color: var(--muted); }
.wifi { width: 36px; height: 36px; position: relative; opacity: 0.9; }
.wifi::before, .wifi::after { content: ""; position: absolute; inset: 0; border: 3px solid var(--muted); border-radius: 50%; transform: scale(1.2); filter: blur(0.2px); }
.wifi::after { border-color: var(--error); clip-path: polygon(0 0, 100% 0, 100% 55%, 0 55%); transform: scale(0.8); }
.features { display: grid; grid-template-columns: 1fr; gap: 12px; margin: 18px 0; }
.feature { display: flex; gap: 12px; align-items: flex-start; }
.dot { width: 8px; height: 8px; border-radius: 50%; background: var(--error); margin-top: 7px; flex-shrink: 0; }
`

const indexHTML = `
<!doctype html>
<html lang="ru">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>СКАМ — медленное и тяжёлое приложение для общения</title>
  <style>{{.CSS}}</style>
</head>
<body>
  <div class="wrap">
    <header>
      <div class="brand">СКАМ</div>
      <div class="tagline">Медленное и тяжёлое приложение для общения. Связь теряется — настроение тоже.</div>
    </header>

    <main class="card" role="main">
      <div class="bad-signal" aria-live="polite">
        <div class="wifi" aria-hidden="true"></div>
        <div>Соединение потеряно… Повтор через 59 минут.</div>
      </div>

      <section class="features" aria-label="Анти-возможности">
        <div class="feature"><div class="dot"></div><div><b>Низкое качество связи:</b> разговоры рвутся даже рядом с роутером.</div></div>
        <div class="feature"><div class="dot"></div><div><b>Медленные сообщения:</b> текст доходит позже, чем вы передумали.</div></div>
        <div class="feature"><div class="dot"></div><div><b>Файлы до 4 МБ:</b> и то через раз, лучше не пытайтесь.</div></div>
        <div class="feature"><div class="dot"></div><div><b>Анимации без анимации:</b> стикеры зависают на первом кадре.</div></div>
      </section>

      <section aria-label="Скачать">
        <a class="btn" href="/download">Скачать на ПК (только Windows)</a>
      </section>
    </main>

    <footer>© 2025 СКАМ. Любые совпадения с реальностью случайны.</footer>
  </div>
</body>
</html>
`

const downloadHTML = `
<!doctype html>
<html lang="ru">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>СКАМ — скачивание для Windows</title>
  <style>{{.CSS}}</style>
  <script>
    let left = 5;
    function tick(){
      document.getElementById("sec").textContent = left;
      document.getElementById("bar").style.width = ((5-left)/5*100) + "%";
      if(left<=0){
        window.location.href="/files/ScamMessenger.exe";
      } else {
        left--;
        setTimeout(tick,1000);
      }
    }
    window.onload=tick;
  </script>
</head>
<body>
  <div class="wrap">
    <header>
      <div class="brand">СКАМ</div>
      <div class="tagline">Скачивание начнётся через <span id="sec">5</span> сек…</div>
    </header>

    <main class="card">
      <p class="tagline">Если загрузка не началась — используйте кнопку ниже.</p>
      <div class="progress" aria-hidden="true"><div class="bar" id="bar"></div></div>
      <a class="btn" href="/files/ScamMessenger.exe" download>Скачать вручную (Windows)</a>
    </main>

    <footer>© 2025 СКАМ. Файл находится рядом со страницей.</footer>
  </div>
</body>
</html>
`

var (
	indexTmpl    = template.Must(template.New("index").Parse(indexHTML))
	downloadTmpl = template.Must(template.New("download").Parse(downloadHTML))
)

// Register 挂载营销页面与安装包下载路由。
func Register(r *gin.Engine, filesDir string) {
	r.GET("/", func(c *gin.Context) { render(c, indexTmpl) })
	r.GET("/download", func(c *gin.Context) { render(c, downloadTmpl) })

	// 安装包按附件下发；只取文件名部分，拦截路径穿越。
	r.GET("/files/:name", func(c *gin.Context) {
		name := filepath.Base(c.Param("name"))
		if name == "." || name == string(filepath.Separator) {
			c.Status(http.StatusNotFound)
			return
		}
		target := filepath.Join(filesDir, name)
		fi, err := os.Stat(target)
		if err != nil || fi.IsDir() {
			c.Status(http.StatusNotFound)
			return
		}
		c.FileAttachment(target, name)
	})
}

func render(c *gin.Context, t *template.Template) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, gin.H{"CSS": template.CSS(pageCSS)}); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
