package render

import "html/template"

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
<div id="controls-wrapper" class="controls-wrapper left">
  <div class="controls">
    <h2>{{.Title}}</h2>
    <div class="control-group">
      <label for="perspective">You are (shown on the right):</label>
      <select id="perspective">
        {{- range .Participants}}
        <option value="{{.}}"{{if eq . $.Perspective}} selected{{end}}>{{.}}</option>
        {{- end}}
      </select>
    </div>
    <div class="control-group">
      <div class="group-label">Dock position</div>
      <div class="dock-buttons">
        <div id="dock-left" class="dock-button active">Left</div>
        <div id="dock-right" class="dock-button">Right</div>
      </div>
    </div>
    <div class="control-group">
      <div class="group-label">Display</div>
      <div class="toggle-row">
        <label for="toggle-text">Show text</label>
        <label class="switch"><input type="checkbox" id="toggle-text" checked><span class="slider"></span></label>
      </div>
      <div class="toggle-row">
        <label for="toggle-media">Show media</label>
        <label class="switch"><input type="checkbox" id="toggle-media" checked><span class="slider"></span></label>
      </div>
    </div>
    <div class="control-group">
      <div class="group-label">Date filter</div>
      <div class="date-range"><label for="date-from">From</label><input type="date" id="date-from"></div>
      <div class="date-range"><label for="date-to">To</label><input type="date" id="date-to"></div>
      <div class="filter-buttons">
        <button id="apply-filter" class="filter-button apply">Apply</button>
        <button id="clear-filter" class="filter-button clear">Clear</button>
      </div>
    </div>
  </div>
  <div id="panel-toggle" class="panel-toggle">&larr;</div>
</div>
<div class="main-content">
<div class="chat">
{{- range .Messages}}
{{- if .Divider}}
<div class="date-divider" data-date="{{.Date}}"><span>{{.Divider}}</span></div>
{{- end}}
<div class="message received
{{- if eq .Kind "system"}} system{{end}}
{{- if eq .Kind "deleted"}} deleted{{end}}
{{- if .Grouped}} grouped{{end}}
{{- if .HasText}} has-text{{end}}
{{- if .MediaRef}} has-media{{end}}" data-seq="{{.Seq}}" data-sender="{{.Sender}}" data-date="{{.Date}}" data-kind="{{.Kind}}" data-media="{{if .MediaRef}}1{{else}}0{{end}}">
  <div class="timestamp">{{.TimeLabel}}</div>
  {{- if and .Sender (not .Grouped)}}
  <div class="sender">{{.Sender}}</div>
  {{- end}}
  {{- if .Paragraphs}}
  <div class="content">{{range .Paragraphs}}<p>{{.}}</p>{{end}}</div>
  {{- end}}
  {{- if .Edited}}
  <div class="edited-label">Edited</div>
  {{- end}}
  {{- if .MediaRef}}
  {{- if .MediaMissing}}
  <div class="media missing">Missing media: {{.MediaRef}}</div>
  {{- else if eq .MediaKind "image"}}
  <div class="media"><img src="{{.MediaPath}}" alt="{{.MediaRef}}" loading="lazy"></div>
  {{- else if eq .MediaKind "video"}}
  <div class="media"><video controls src="{{.MediaPath}}"></video></div>
  {{- else if eq .MediaKind "audio"}}
  <div class="media"><audio controls src="{{.MediaPath}}"></audio></div>
  {{- else}}
  <div class="media"><a href="{{.MediaPath}}" target="_blank">{{.MediaRef}}</a></div>
  {{- end}}
  {{- end}}
</div>
{{- end}}
{{- if .ExtraMedia}}
<div class="date-divider extra"><span>Additional media</span></div>
{{- range .ExtraMedia}}
<div class="message received has-media extra-media" data-sender="" data-date="" data-kind="normal" data-media="1">
  <div class="media-name">{{.Name}}</div>
  {{- if eq .Kind "image"}}
  <div class="media"><img src="{{.Path}}" alt="{{.Name}}" loading="lazy"></div>
  {{- else if eq .Kind "video"}}
  <div class="media"><video controls src="{{.Path}}"></video></div>
  {{- else if eq .Kind "audio"}}
  <div class="media"><audio controls src="{{.Path}}"></audio></div>
  {{- else}}
  <div class="media"><a href="{{.Path}}" target="_blank">{{.Name}}</a></div>
  {{- end}}
</div>
{{- end}}
{{- end}}
</div>
</div>
<div id="image-modal" class="modal"><span class="modal-close">&times;</span><img class="modal-img"></div>
<script>{{.Script}}</script>
</body>
</html>
`

const pageStyle = `
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;margin:0;background:#ece5dd;display:flex;min-height:100vh}
.main-content{flex:1;padding:20px;max-width:820px;margin:0 auto}
.chat{display:flex;flex-direction:column;gap:8px}
.message{max-width:72%;padding:8px 12px;border-radius:10px;position:relative;box-shadow:0 1px 1px rgba(0,0,0,.12);word-wrap:break-word}
.message.grouped{margin-top:-4px}
.received{align-self:flex-start;background:#fff;border-bottom-left-radius:3px}
.sent{align-self:flex-end;background:#dcf8c6;border-bottom-right-radius:3px}
.system{align-self:center;background:#fdf3d8;color:#6e6e6e;font-size:.85em;text-align:center;max-width:84%}
.deleted .content{font-style:italic;color:#999}
.timestamp{font-size:.72em;color:#8e8e93}
.sender{font-weight:700;font-size:.85em;color:#0b6e60;margin:2px 0}
.content p{margin:0 0 4px 0;min-height:1em}
.content p:last-child{margin-bottom:0}
.edited-label{font-size:.72em;color:#999;font-style:italic;margin-top:2px}
.media{margin-top:6px;max-width:100%}
.media img{max-width:100%;border-radius:6px;cursor:pointer}
.media video,.media audio{max-width:100%;border-radius:6px}
.media.missing{font-size:.85em;font-style:italic;color:#b05a4a;border:1px dashed #b05a4a;border-radius:6px;padding:6px 8px}
.media-name{font-size:.72em;color:#8e8e93;font-family:monospace}
code{font-family:monospace;background:#f2f2f2;padding:1px 4px;border-radius:3px}
.date-divider{text-align:center;margin:14px 0;color:#6e6e6e;font-size:.85em}
.date-divider span{background:#d9d0c5;padding:3px 12px;border-radius:10px}
.message.date-out,.date-divider.date-out{display:none}
body.hide-text .message.has-text:not(.has-media){display:none}
body.hide-text .content,body.hide-text .edited-label{display:none}
body.hide-media .message.has-media:not(.has-text){display:none}
body.hide-media .media{display:none}
.controls-wrapper{position:fixed;top:0;bottom:0;width:250px;z-index:100;transition:transform .25s ease}
.controls-wrapper.left{left:0}
.controls-wrapper.right{right:0}
.controls-wrapper.left.minimized{transform:translateX(-100%)}
.controls-wrapper.right.minimized{transform:translateX(100%)}
.controls{background:#fff;height:100%;overflow-y:auto;padding:14px;box-shadow:0 1px 5px rgba(0,0,0,.2)}
.controls h2{margin:0 0 12px 0;font-size:1.05em}
.control-group{margin-bottom:16px;border-top:1px solid #eee;padding-top:10px}
.control-group:first-of-type{border-top:none;padding-top:0}
.control-group label{display:block;font-size:.85em;margin-bottom:5px}
.group-label{font-weight:700;font-size:.85em;margin-bottom:8px}
.controls select{width:100%;padding:6px;border:1px solid #ccc;border-radius:5px}
.dock-buttons{display:flex;gap:8px}
.dock-button{flex:1;padding:6px;border:1px solid #ccc;border-radius:5px;background:#f5f5f5;cursor:pointer;text-align:center;font-size:.85em}
.dock-button.active{background:#128c7e;color:#fff;border-color:#128c7e}
.toggle-row{display:flex;justify-content:space-between;align-items:center;margin-bottom:8px}
.switch{position:relative;display:inline-block;width:40px;height:22px}
.switch input{opacity:0;width:0;height:0}
.slider{position:absolute;cursor:pointer;inset:0;background:#ccc;border-radius:22px;transition:.3s}
.slider:before{content:"";position:absolute;height:16px;width:16px;left:3px;bottom:3px;background:#fff;border-radius:50%;transition:.3s}
input:checked+.slider{background:#128c7e}
input:checked+.slider:before{transform:translateX(18px)}
.date-range{display:flex;align-items:center;gap:8px;margin-bottom:8px}
.date-range label{flex:0 0 36px;margin:0}
.date-range input{flex:1;padding:5px;border:1px solid #ccc;border-radius:5px}
.filter-buttons{display:flex;gap:8px}
.filter-button{flex:1;padding:6px 0;border-radius:5px;border:none;cursor:pointer;font-size:.85em}
.filter-button.apply{background:#128c7e;color:#fff}
.filter-button.clear{background:#f1f1f1;border:1px solid #ddd}
.panel-toggle{position:absolute;top:50%;transform:translateY(-50%);width:36px;height:36px;background:#fff;border:1px solid #ddd;border-radius:50%;display:flex;align-items:center;justify-content:center;cursor:pointer;box-shadow:0 1px 3px rgba(0,0,0,.2)}
.controls-wrapper.left .panel-toggle{right:-18px}
.controls-wrapper.right .panel-toggle{left:-18px}
.modal{display:none;position:fixed;inset:0;z-index:1000;background:rgba(0,0,0,.9)}
.modal-img{position:absolute;top:50%;left:50%;transform:translate(-50%,-50%);max-width:92%;max-height:92%}
.modal-close{position:absolute;top:12px;right:28px;color:#f1f1f1;font-size:38px;cursor:pointer}
@media screen and (max-width:768px){.message{max-width:86%}.controls-wrapper{width:80%;max-width:300px}}
`
