// Package docs registers the generated Swagger specification with swag so
// the /swagger/* route can serve it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Create a student account",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current identity",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["auth"],
                "summary": "Change password",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/users/search": {
            "get": {
                "tags": ["users"],
                "summary": "Search students by name or student ID",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/users/me": {
            "put": {
                "tags": ["users"],
                "summary": "Update own profile",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/projects": {
            "post": {
                "tags": ["projects"],
                "summary": "Submit a new project idea",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            },
            "get": {
                "tags": ["projects"],
                "summary": "List the caller's projects",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/projects/all": {
            "get": {
                "tags": ["projects"],
                "summary": "List all projects with student info",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/projects/final-marks": {
            "get": {
                "tags": ["projects"],
                "summary": "List all projects with marks",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/projects/final": {
            "put": {
                "tags": ["projects"],
                "summary": "Submit the final project link",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/projects/approve/{id}": {
            "put": {
                "tags": ["projects"],
                "summary": "Approve or reject a project",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/projects/feedback/{id}": {
            "put": {
                "tags": ["projects"],
                "summary": "Set feedback and marks",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/projects/{id}": {
            "put": {
                "tags": ["projects"],
                "summary": "Update title, description, or features",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["projects"],
                "summary": "Delete a project",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/projects/{id}/features/{index}": {
            "put": {
                "tags": ["projects"],
                "summary": "Toggle one feature's completion flag",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/announcements": {
            "get": {
                "tags": ["announcements"],
                "summary": "List announcements",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["announcements"],
                "summary": "Create an announcement",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/announcements/{id}": {
            "delete": {
                "tags": ["announcements"],
                "summary": "Delete an announcement",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Course Project Portal API",
	Description:      "Students submit and track project ideas; faculty approve, grade, and announce.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
