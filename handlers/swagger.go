package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the board API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>tax-board — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the board endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "tax-board", "version": "v0.1.0" },
  "paths": {
    "/api/posts": {
      "get": {
        "summary": "List posts newest-first",
        "parameters": [
          { "name": "offset", "in": "query", "schema": { "type": "integer" } },
          { "name": "limit", "in": "query", "schema": { "type": "integer", "maximum": 20 } }
        ],
        "responses": { "200": { "description": "page of posts with nextOffset/hasMore" } }
      },
      "post": {
        "summary": "Create a post",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "title": { "type": "string" }, "content": { "type": "string" }, "password": { "type": "string" } } } } } },
        "responses": { "201": { "description": "created post" }, "400": { "description": "validation or banned-term failure" }, "429": { "description": "write cooldown active" } }
      }
    },
    "/api/posts/{id}": {
      "get": { "summary": "Get a post with its comments", "responses": { "200": { "description": "post" }, "404": { "description": "missing" } } },
      "put": {
        "summary": "Edit a post (password-owned)",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "title": { "type": "string" }, "content": { "type": "string" }, "password": { "type": "string" } } } } } },
        "responses": { "200": { "description": "refreshed post" }, "403": { "description": "password mismatch" }, "404": { "description": "missing" } }
      },
      "delete": {
        "summary": "Delete a post and its comments",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "password": { "type": "string" } } } } } },
        "responses": { "200": { "description": "deleted" }, "403": { "description": "password mismatch" }, "404": { "description": "missing" } }
      }
    },
    "/api/posts/{id}/comments": {
      "post": {
        "summary": "Add a comment to a post",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "content": { "type": "string" }, "password": { "type": "string" } } } } } },
        "responses": { "201": { "description": "parent post with refreshed comments" }, "404": { "description": "post missing" }, "429": { "description": "write cooldown active" } }
      }
    },
    "/api/comments/{id}": {
      "put": { "summary": "Edit a comment (password-owned)", "responses": { "200": { "description": "parent post" }, "403": { "description": "password mismatch" }, "404": { "description": "missing" } } },
      "delete": { "summary": "Delete a comment", "responses": { "200": { "description": "parent post" }, "403": { "description": "password mismatch" }, "404": { "description": "missing" } } }
    },
    "/api/ad-interest": {
      "post": { "summary": "Increment an ad-interest counter", "responses": { "200": { "description": "recorded" }, "400": { "description": "unknown category" } } }
    }
  }
}`
