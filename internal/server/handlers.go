package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/AdrianWangs/go-jstring/config"
	"github.com/AdrianWangs/go-jstring/pkg/logger"
	"github.com/AdrianWangs/go-jstring/pkg/router"
	"github.com/AdrianWangs/go-jstring/pkg/str"
)

// result is encoded as a JSON object or as a google.protobuf.Struct
type result map[string]interface{}

func (s *Server) handleConcat(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := str.New(q.Get("a")).Concat(str.New(q.Get("b")))
	s.writeString(w, r, v)
}

func (s *Server) handleSubstring(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src := str.New(q.Get("s"))

	start, err := intParam(q.Get("start"), "start", nil)
	if err != nil {
		router.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := intParam(q.Get("end"), "end", intPtr(src.Len()))
	if err != nil {
		router.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := src.Substring(start, end)
	if err != nil {
		s.writeStrError(w, err)
		return
	}
	s.writeString(w, r, v)
}

func (s *Server) handleIndexOf(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := intParam(q.Get("from"), "from", intPtr(0))
	if err != nil {
		router.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	index := str.New(q.Get("s")).IndexOfFrom(str.New(q.Get("needle")), from)
	s.write(w, r, result{"index": index})
}

func (s *Server) handleFromInt(w http.ResponseWriter, r *http.Request) {
	i, err := intParam(r.URL.Query().Get("i"), "i", nil)
	if err != nil {
		router.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeString(w, r, str.FromInt(i))
}

func (s *Server) handleParseFloat(w http.ResponseWriter, r *http.Request) {
	f, err := s.pool.Intern(str.New(r.URL.Query().Get("s"))).ParseFloat()
	if err != nil {
		s.writeStrError(w, err)
		return
	}
	s.write(w, r, result{"float": floatValue(f)})
}

func (s *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	v := s.pool.Intern(str.New(r.URL.Query().Get("s")))
	s.write(w, r, result{"hash": v.HashCode()})
}

func (s *Server) handleInternStats(w http.ResponseWriter, r *http.Request) {
	stats := s.pool.Stats()
	s.write(w, r, result{
		"lookups": stats.Lookups,
		"hits":    stats.Hits,
		"size":    s.pool.Len(),
	})
}

// writeString interns v and writes its text and length
func (s *Server) writeString(w http.ResponseWriter, r *http.Request, v *str.String) {
	canonical := s.pool.Intern(v)
	s.write(w, r, result{
		"value":  canonical.String(),
		"length": canonical.Len(),
		"shared": canonical != v,
	})
}

func (s *Server) writeStrError(w http.ResponseWriter, err error) {
	if str.IsIndexOutOfRange(err) || str.IsNumberFormat(err) {
		router.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Errorf("unexpected error: %v", err)
	router.WriteError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) wantsProtobuf(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), contentTypeProtobuf) {
		return true
	}
	return s.protocol == config.ProtocolProtobuf
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, res result) {
	if s.wantsProtobuf(r) {
		msg, err := structpb.NewStruct(res)
		if err != nil {
			router.WriteError(w, http.StatusInternalServerError, "error building response: "+err.Error())
			return
		}
		data, err := proto.Marshal(msg)
		if err != nil {
			router.WriteError(w, http.StatusInternalServerError, "error marshaling response: "+err.Error())
			return
		}
		w.Header().Set("Content-Type", contentTypeProtobuf)
		w.Write(data)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		logger.Errorf("序列化响应失败: %v", err)
	}
}

// intParam parses a decimal query parameter; def is used when raw is empty, nil makes it required
func intParam(raw, name string, def *int) (int, error) {
	if raw == "" {
		if def == nil {
			return 0, fmt.Errorf("%s parameter is required", name)
		}
		return *def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s parameter is not an integer: %q", name, raw)
	}
	return v, nil
}

func intPtr(i int) *int {
	return &i
}

// floatValue keeps infinities encodable, JSON has no literal for them
func floatValue(f float64) interface{} {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}
