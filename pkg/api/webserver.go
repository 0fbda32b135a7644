package api

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"github.com/Team2502/colordetect/pkg/table"
	"github.com/Team2502/colordetect/pkg/vision"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

//Server holds what the routes read from
type Server struct {
	Store   *table.Store
	Hub     *table.Hub     //optional, /ws is not served without it
	Latest  *vision.Latest //optional, /api/detections and /api/snapshot answer 404 without it
	Classes []string
}

//SetRouter returns the table routes (/get/:key, /set/:key, /get_keys) the robot telemetry
//dashboard already speaks, plus the detection API under /api
func SetRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/get/:key", func(ctx *gin.Context) {
		if v, ok := s.Store.Get(ctx.Param("key")); ok {
			ctx.JSON(http.StatusOK, v)
		} else {
			ctx.JSON(http.StatusOK, nil)
		}
	})

	r.POST("/set/:key", func(ctx *gin.Context) {
		var v table.Value
		if err := ctx.ShouldBindJSON(&v); err != nil {
			log.Printf("api/set: Could not parse value for '%s', got '%v'", ctx.Param("key"), err)
			ctx.String(http.StatusBadRequest, "Failure")
			return
		}

		if err := s.Store.Set(ctx.Param("key"), v); err != nil {
			ctx.String(http.StatusBadRequest, "Failure")
			return
		}

		ctx.String(http.StatusOK, "Success")
	})

	r.GET("/get_keys", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, s.Store.Keys())
	})

	if s.Hub != nil {
		r.GET("/ws", func(ctx *gin.Context) {
			s.Hub.ServeWS(ctx.Writer, ctx.Request)
		})
	}

	apiRoutes := r.Group("/api")

	apiRoutes.GET("/classes", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, s.Classes)
	})

	apiRoutes.GET("/detections", func(ctx *gin.Context) {
		if s.Latest == nil {
			ctx.Status(http.StatusNotFound)
			return
		}

		result, ok := s.Latest.Result()
		if !ok {
			ctx.Status(http.StatusNotFound) //no frame processed yet
			return
		}

		ctx.JSON(http.StatusOK, result)
	})

	apiRoutes.GET("/snapshot", func(ctx *gin.Context) {
		if s.Latest == nil {
			ctx.Status(http.StatusNotFound)
			return
		}

		jpeg, ok := s.Latest.Snapshot()
		if !ok {
			ctx.Status(http.StatusNotFound)
			return
		}

		if w := ctx.Query("width"); w != "" {
			width, err := strconv.Atoi(w)
			if err != nil || width <= 0 {
				ctx.String(http.StatusBadRequest, "bad width '%s'", w)
				return
			}

			if jpeg, err = thumbnail(jpeg, width); err != nil {
				log.Printf("api/snapshot: Error, got '%v'", err)
				ctx.Status(http.StatusInternalServerError)
				return
			}
		}

		ctx.Data(http.StatusOK, "image/jpeg", jpeg)
	})

	return r
}

//thumbnail scales a JPEG down to width keeping the aspect ratio. Narrower images are returned as is.
func thumbnail(data []byte, width int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if img.Bounds().Dx() <= width {
		return data, nil
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Resize(img, width, 0, imaging.Lanczos), imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
