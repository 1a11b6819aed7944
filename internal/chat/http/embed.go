package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jevi-chat/console/internal/chat/domain"
	"github.com/jevi-chat/console/internal/upstream"
)

// embed renders the self-contained widget page that third-party sites place
// in a 400x600 iframe. No admin chrome; a fresh session id per render so
// reloading the iframe starts a fresh conversation.
func (h *Handler) embed(c *gin.Context) {
	projectID := strings.TrimSpace(c.Param("project_id"))
	if projectID == "" {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte(embedErrorPage))
		return
	}

	p, err := h.chatService.Project(c.Request.Context(), "", projectID)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, upstream.ErrNotFound) || errors.Is(err, upstream.ErrForbidden) {
			status = http.StatusNotFound
		}
		c.Data(status, "text/html; charset=utf-8", []byte(embedErrorPage))
		return
	}

	var buf strings.Builder
	if err := embedTmpl.Execute(&buf, embedPageData{
		ProjectID:      projectID,
		ProjectName:    p.Name,
		WelcomeMessage: p.WelcomeMessage,
		SessionID:      domain.NewSessionID(),
		MaxMessageLen:  domain.MaxMessageLen,
	}); err != nil {
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(embedErrorPage))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(buf.String()))
}

type embedPageData struct {
	ProjectID      string
	ProjectName    string
	WelcomeMessage string
	SessionID      string
	MaxMessageLen  int
}

const embedErrorPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>Chat Unavailable</title></head>
<body style="font-family:sans-serif;text-align:center;padding:2em">
<h3>Chat Unavailable</h3><p>Project not found or inactive.</p>
</body></html>`

var embedTmpl = template.Must(template.New("embed").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.ProjectName}}</title>
<style>
body{margin:0;font-family:sans-serif;display:flex;flex-direction:column;height:100vh}
header{padding:10px;background:#2b6cb0;color:#fff}
header h1{margin:0;font-size:16px}
#messages{flex:1;overflow-y:auto;padding:10px}
.msg{margin:6px 0;padding:8px 10px;border-radius:8px;max-width:85%;white-space:pre-wrap}
.user{background:#bee3f8;margin-left:auto}
.bot{background:#edf2f7}
#error{display:none;background:#fed7d7;color:#822727;padding:6px 10px;font-size:13px}
form{display:flex;border-top:1px solid #e2e8f0}
input{flex:1;border:0;padding:12px;font-size:14px;outline:none}
button{border:0;background:#2b6cb0;color:#fff;padding:0 16px;cursor:pointer}
button:disabled{opacity:.5}
footer{text-align:center;font-size:11px;color:#718096;padding:4px}
</style>
</head>
<body>
<header><h1>{{.ProjectName}}</h1></header>
<div id="error"></div>
<div id="messages">{{if .WelcomeMessage}}<div class="msg bot">{{.WelcomeMessage}}</div>{{end}}</div>
<form id="f"><input id="t" maxlength="{{.MaxMessageLen}}" placeholder="Type your message..." autocomplete="off"><button id="b" type="submit">Send</button></form>
<footer>Powered by <strong>Jevi Chat</strong></footer>
<script>
var projectId={{.ProjectID}},sessionId={{.SessionID}},sending=false;
var box=document.getElementById('messages'),input=document.getElementById('t'),
btn=document.getElementById('b'),errBox=document.getElementById('error');
function add(text,cls){var d=document.createElement('div');d.className='msg '+cls;d.textContent=text;box.appendChild(d);box.scrollTop=box.scrollHeight;return d;}
function showError(msg){errBox.textContent=msg;errBox.style.display='block';}
fetch('/user/chat/'+projectId+'/history?session_id='+encodeURIComponent(sessionId))
.then(function(r){return r.json();})
.then(function(d){(d.messages||[]).forEach(function(m){add(m.is_user?m.message:m.response,m.is_user?'user':'bot');});})
.catch(function(){});
document.getElementById('f').addEventListener('submit',function(ev){
ev.preventDefault();
var text=input.value.trim();
if(!text||sending)return;
sending=true;input.disabled=true;btn.disabled=true;errBox.style.display='none';
var optimistic=add(text,'user');
input.value='';
fetch('/user/chat/'+projectId+'/message',{method:'POST',headers:{'Content-Type':'application/json'},
body:JSON.stringify({message:text,session_id:sessionId})})
.then(function(r){return r.json().then(function(d){if(!r.ok)throw new Error(d.error||'send failed');return d;});})
.then(function(d){add(d.response,'bot');})
.catch(function(){box.removeChild(optimistic);showError('Failed to send message. Please try again.');})
.finally(function(){sending=false;input.disabled=false;btn.disabled=false;input.focus();});
});
</script>
</body>
</html>`))
