package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"image/color"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/frizinak/gotls/simplehttp"
	"github.com/frizinak/gotls/tls"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"

	"github.com/frizinak/gohsk/common"
	"github.com/frizinak/gohsk/dataset"
	"github.com/frizinak/gohsk/image"
	"github.com/frizinak/gohsk/pinyin"
	"github.com/frizinak/gohsk/pipeline"
)

var (
	imgFG = color.NRGBA{255, 255, 255, 255}
	imgBG = color.NRGBA{0, 0, 0, 0}
)

type Config struct {
	ImageCacheDir string
}

type App struct {
	conf       Config
	ds         *dataset.Dataset
	font       []byte
	css, js    []byte
	pageTpl    *template.Template
	homeTpl    *template.Template
	resultsTpl *template.Template
}

func (app *App) route(r *http.Request, l *log.Logger) (simplehttp.HandleFunc, int) {
	p := strings.Trim(r.URL.Path, "/")
	r.URL.Path = p

	switch p {
	case "":
		return app.handleHome, 0
	}

	switch {
	case strings.HasPrefix(p, "w/") && strings.Count(p, "/") == 1:
		return app.handleWord, 0
	case strings.HasPrefix(p, "i/") && strings.Count(p, "/") == 1:
		return app.handleImg, 0
	case strings.HasPrefix(p, "asset/") && strings.Count(p, "/") == 1:
		return app.handleAsset, 0
	}

	return nil, 0
}

func absWord(r pipeline.Enriched) string { return fmt.Sprintf("/w/%s", r.Word) }
func absImg(r pipeline.Enriched) string  { return fmt.Sprintf("/i/%d.png", r.Index) }

func (app *App) cache(path string, w io.Writer, generate func(w io.Writer) error) error {
	f, err := os.Open(path)
	if err == nil {
		_, err = io.Copy(w, f)
		f.Close()
		return err
	}
	if !os.IsNotExist(err) {
		return err
	}

	tmp := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())
	f, err = os.Create(tmp)
	if err != nil {
		return err
	}
	if err := generate(io.MultiWriter(f, w)); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	f.Close()
	return os.Rename(tmp, path)
}

func (app *App) img(row pipeline.Enriched, w io.Writer) error {
	if len(app.font) == 0 {
		return errors.New("no font configured")
	}

	fp := filepath.Join(app.conf.ImageCacheDir, strconv.Itoa(row.Index))
	return app.cache(fp, w, func(w io.Writer) error {
		img, err := image.Card(app.font, 300, row.Word, row.Numbered, imgFG, imgBG)
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	})
}

func (app *App) handleAsset(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
	p := strings.SplitN(r.URL.Path, "/", 2)
	h := w.Header()
	switch p[1] {
	case "app.css":
		h.Set("content-type", "text/css")
		h.Set("cache-control", "max-age=86400")
		w.Write(app.css)
		return 0, nil
	case "app.js":
		h.Set("content-type", "application/javascript")
		h.Set("cache-control", "max-age=86400")
		w.Write(app.js)
		return 0, nil
	}

	return http.StatusNotFound, nil
}

func (app *App) handleHome(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
	w.Header().Set("content-type", "text/html")
	return 0, app.homeTpl.Execute(w, Page{Title: "GoHSK"})
}

func (app *App) handleImg(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
	if len(app.font) == 0 {
		return http.StatusNotFound, nil
	}
	p := strings.SplitN(r.URL.Path, "/", 2)
	if !strings.HasSuffix(p[1], ".png") {
		return http.StatusNotFound, nil
	}
	n, _ := strconv.Atoi(strings.TrimSuffix(p[1], ".png"))
	if n <= 0 {
		return http.StatusNotFound, nil
	}

	var row pipeline.Enriched
	found := false
	for _, r := range app.ds.Rows() {
		if r.Index == n {
			row, found = r, true
			break
		}
	}
	if !found {
		return http.StatusNotFound, nil
	}

	h := w.Header()
	h.Set("content-type", "image/png")
	h.Set("cache-control", "max-age=86400")
	return 0, app.img(row, w)
}

func (app *App) handleWord(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
	p := strings.SplitN(r.URL.Path, "/", 2)

	res, hanzi := app.ds.Search(p[1], 30)
	if len(res) == 0 && !hanzi {
		res = app.ds.SearchGlossFuzzy(p[1], 30)
	}

	reqw := strings.ToLower(r.Header.Get("X-Requested-With"))
	xhr := reqw == "fetch" || reqw == "xmlhttprequest"

	d := Page{Title: "GoHSK", Query: p[1], Rows: res}

	w.Header().Set("content-type", "text/html")
	if xhr {
		return 0, app.resultsTpl.Execute(w, d)
	}
	return 0, app.pageTpl.Execute(w, d)
}

type Page struct {
	Title string
	Query string
	Rows  []pipeline.Enriched
}

// toneSpans wraps each syllable of a numbered pronunciation in a span
// colored by its tone digit.
func toneSpans(numbered string) template.HTML {
	var b strings.Builder
	for vi, variant := range pinyin.ParseNumbered(numbered).Variants {
		if vi != 0 {
			b.WriteString(" / ")
		}
		for si, syl := range variant {
			if si != 0 {
				b.WriteByte(' ')
			}
			tone := "5"
			if len(syl) > 0 && syl[len(syl)-1] >= '1' && syl[len(syl)-1] <= '5' {
				tone = syl[len(syl)-1:]
			}
			b.WriteString(`<span class="tone` + tone + `">`)
			b.WriteString(template.HTMLEscapeString(syl))
			b.WriteString(`</span>`)
		}
	}
	return template.HTML(b.String())
}

const mainTplStr = `{{- define "word" -}}
<td class="word"><a href="{{ absWord . }}">{{ .Word }}</a></td>
{{- if showImages -}}
<td class="img-container"><img src="{{ absImg . }}"/></td>
{{- end -}}
<td class="smol">{{ .Level }}</td>
<td class="smol">{{ .POS }}</td>
<td class="smol">{{ toneSpans .Numbered }}</td>
<td class="smol">{{ toneSpans .CedictPinyin }}</td>
<td class="smol">{{ .Traditional }}</td>
<td>{{ .Definition }}</td>
{{- end -}}

{{- define "header" -}}
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>{{ .Title }}</title>
	<link rel="stylesheet" href="/asset/app.css"/>
</head>
<body>
<main>
{{- end -}}

{{- define "footer" -}}
<script src="/asset/app.js"></script>
</main>
</body>
</html>
{{- end -}}

{{- define "results" -}}
{{ if .Rows -}}
<table>
{{- range .Rows }}
<tr>{{ template "word" . }}</tr>
{{ end -}}
</table>
{{ else -}}
No results
{{ end -}}
{{- end -}}

{{ template "header" . }}
<div class="input">
<form>
<input type="text"   class="val"    value="{{ .Query }}" />
<input type="submit" class="submit" value=">"            />
</form>
</div>
<div class="results">
{{ template "results" . }}
</div>
{{ template "footer" . }}`

func main() {
	var addr string
	var file string
	var cacheDir string
	var fontFile string
	flag.StringVar(&addr, "l", ":80", "address to bind to")
	flag.StringVar(&file, "d", "hsk.tsv", "enriched dataset TSV")
	flag.StringVar(&cacheDir, "c", "", "cache dir, defaults to <XDG default>/gohsk")
	flag.StringVar(&fontFile, "font", "", "CJK-capable opentype font, enables word cards")
	flag.Parse()

	if cacheDir == "" {
		_cacheDir, err := os.UserCacheDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "please specify a cache dir (-c): %s\n", err)
			os.Exit(1)
		}
		cacheDir = filepath.Join(_cacheDir, "gohsk")
	}

	ds, err := common.LoadDataset(file)
	if err != nil {
		panic(err)
	}

	var font []byte
	if fontFile != "" {
		font, err = os.ReadFile(fontFile)
		if err != nil {
			panic(err)
		}
	}

	min := minify.New()
	min.AddFunc("text/css", css.Minify)
	min.AddFunc("application/javascript", js.Minify)
	cssMin, err := min.String("text/css", appCSS)
	if err != nil {
		panic(err)
	}
	jsMin, err := min.String("application/javascript", appJS)
	if err != nil {
		panic(err)
	}

	funcs := template.FuncMap{
		"absWord":    absWord,
		"absImg":     absImg,
		"toneSpans":  toneSpans,
		"showImages": func() bool { return len(font) != 0 },
	}
	tpl := template.Must(template.New("page").Funcs(funcs).Parse(mainTplStr))
	homeTpl := template.Must(tpl.New("home").Parse(`
{{- template "header" . }}
<a href="/w/你好"><h1>你好</h1></a>
{{ template "footer" . }}`))
	resultsTpl := template.Must(tpl.New("xhr").Parse(`
{{- template "results" . -}}
`))
	errTpl := template.Must(tpl.New("err").Parse(`
{{- template "header" . }}
	{{ .Query }}
{{ template "footer" . }}`))

	imgCacheDir := filepath.Join(cacheDir, "img")
	os.MkdirAll(imgCacheDir, 0700)

	l := log.New(os.Stderr, "", log.Ldate|log.Ltime)
	app := &App{
		conf:       Config{ImageCacheDir: imgCacheDir},
		ds:         ds,
		font:       font,
		css:        []byte(cssMin),
		js:         []byte(jsMin),
		pageTpl:    tpl,
		homeTpl:    homeTpl,
		resultsTpl: resultsTpl,
	}
	s := tls.New(app.route, l)

	buf := bytes.NewBuffer(nil)
	for i := 300; i <= 500; i++ {
		buf.Reset()
		errstr := http.StatusText(i)
		if errstr == "" {
			errstr = "Something went wrong"
		}
		err := errTpl.Execute(buf, Page{
			Title: "Error",
			Query: fmt.Sprintf("%d - %s", i, errstr),
		})
		if err != nil {
			panic(err)
		}
		b := make([]byte, buf.Len())
		copy(b, buf.Bytes())
		s.SetHTTPErrorHandler(i, simplehttp.NewHTTPError("text/html", b))
	}

	l.Fatal(s.Start(addr, false))
}
