package httpapi

import (
	"net/http"
	"strconv"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/network"
	"github.com/matzehuels/netdraw/pkg/pipeline"
	"github.com/matzehuels/netdraw/pkg/source"
	"github.com/matzehuels/netdraw/pkg/tree"
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatDrawIO: "application/vnd.jgraph.mxfile",
	pipeline.FormatJSON:   "application/json",
	pipeline.FormatDOT:    "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:    "image/svg+xml",
	pipeline.FormatPNG:    "image/png",
	pipeline.FormatPDF:    "application/pdf",
}

// readSet decodes the request body with the source selected by the
// "source" or "filename" query parameter.
func (h *Handler) readSet(r *http.Request) (*network.Set, error) {
	q := r.URL.Query()

	name := q.Get("source")
	if name == "" {
		filename := q.Get("filename")
		if filename == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "source or filename query parameter is required")
		}
		if err := errs.ValidateFilename(filename); err != nil {
			return nil, err
		}
		s, err := source.ForFile(filename)
		if err != nil {
			return nil, err
		}
		name = s.Name()
	}

	sheet := q.Get("sheet")
	if sheet != "" {
		if err := errs.ValidateSheetName(sheet); err != nil {
			return nil, err
		}
	}

	return pipeline.LoadReader(r.Context(), name, r.Body, source.Options{
		Sheet:  sheet,
		Logger: h.log,
	})
}

// requestOptions overlays query parameters on the configured defaults.
func (h *Handler) requestOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := h.opts.Defaults
	opts.Logger = h.log

	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	opts.Formats = []string{format}

	if v := q.Get("skip_frames"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidOptions, "skip_frames: %q is not a boolean", v)
		}
		opts.SkipFrames = b
	}
	if v := q.Get("iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errs.New(errs.ErrCodeInvalidOptions, "iterations: %q is not a non-negative integer", v)
		}
		opts.Frame.MaxIterations = n
	}
	if v := q.Get("name"); v != "" {
		opts.Diagram.DiagramName = v
	}
	return opts, nil
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)

	opts, err := h.requestOptions(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := pipeline.ValidateFormat(opts.Formats[0]); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	set, err := h.readSet(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	res, err := h.runner.Execute(r.Context(), set, opts)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	format := opts.Formats[0]
	cacheStatus := "miss"
	if res.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", `attachment; filename="`+pipeline.DefaultOutputName+pipeline.Extensions[format]+`"`)
	w.Header().Set("X-Netdraw-Cache", cacheStatus)
	w.Header().Set("X-Netdraw-Nodes", strconv.Itoa(res.Stats.NodeCount))
	w.Header().Set("X-Netdraw-Frame-Rounds", strconv.Itoa(res.Resolution.Rounds))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// inspectResponse summarizes an uploaded node list without rendering it.
type inspectResponse struct {
	Nodes       int                 `json:"nodes"`
	Edges       int                 `json:"edges"`
	Roots       []string            `json:"roots"`
	VLANs       map[string][]string `json:"vlans"`
	Notes       int                 `json:"notes"`
	Valid       bool                `json:"valid"`
	Problem     string              `json:"problem,omitempty"`
	ProblemCode string              `json:"problem_code,omitempty"`
}

func (h *Handler) handleInspect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)

	set, err := h.readSet(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	f := tree.Build(set)
	resp := inspectResponse{
		Nodes: set.Len(),
		Edges: set.EdgeCount(),
		Roots: f.Roots,
		VLANs: make(map[string][]string),
		Notes: len(set.Notes()),
		Valid: true,
	}
	for tag, ids := range set.VLANGroups() {
		resp.VLANs[strconv.Itoa(tag)] = ids
	}
	err = f.CheckRoots()
	if err == nil {
		err = f.Validate()
	}
	if err != nil {
		resp.Valid = false
		resp.Problem = errs.UserMessage(err)
		resp.ProblemCode = string(errs.GetCode(err))
	}
	h.writeJSON(w, http.StatusOK, resp)
}
