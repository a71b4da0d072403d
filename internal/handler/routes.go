package handler

import (
	"net/http"

	"github.com/msomdec/weeklist/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, weekLists *service.WeekListService, limiter *service.TokenBucket) {
	authHandler := NewAuthHandler(auth)
	weekListHandler := NewWeekListHandler(weekLists)

	protect := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}
	protectOpen := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, RequireOpenWeekList(weekLists, h))
	}

	mux.HandleFunc("GET /{$}", HandleRoot)
	mux.HandleFunc("GET /health", HandleHealth(weekLists.Now))

	mux.Handle("POST /signup", RateLimit(limiter, http.HandlerFunc(authHandler.HandleSignup)))
	mux.Handle("POST /login", RateLimit(limiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.Handle("GET /protected", protect(authHandler.HandleProtected))

	mux.Handle("POST /weeklist/{userId}", protect(weekListHandler.HandleCreate))
	mux.Handle("PUT /weeklist/{userId}/{weekListId}", protect(weekListHandler.HandleUpdate))
	mux.Handle("DELETE /weeklist/{userId}/{weekListId}", protect(weekListHandler.HandleDelete))
	mux.Handle("GET /weeklists/{userId}", protect(weekListHandler.HandleList))
	mux.Handle("GET /weeklist/{weekListId}", protect(weekListHandler.HandleGet))
	mux.Handle("GET /feed", protect(weekListHandler.HandleFeed))
	mux.Handle("PUT /weeklist/{userId}/{weekListId}/markdoneWeeklist", protectOpen(weekListHandler.HandleMarkDone))

	mux.Handle("POST /weeklist/{userId}/{weekListId}/addtask", protect(weekListHandler.HandleAddTask))
	mux.Handle("PUT /weeklist/{userId}/{weekListId}/{taskId}/updatetask", protect(weekListHandler.HandleUpdateTask))
	mux.Handle("DELETE /weeklist/{userId}/{weekListId}/{taskId}/deletetask", protect(weekListHandler.HandleDeleteTask))
	mux.Handle("GET /weeklist/{userId}/{weekListId}/alltasks", protect(weekListHandler.HandleListTasks))
	mux.Handle("PUT /weeklist/{userId}/{weekListId}/{taskId}/markdone", protectOpen(weekListHandler.HandleMarkTaskDone))

	mux.HandleFunc("/", HandleNotFound)
}
