// Package docs swag 형식의 API 문서. 핸들러의 @Router 주석과 함께 직접 관리합니다.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/admin/activations/{id}/reinstate": {
            "post": {
                "parameters": [
                    {
                        "description": "ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "복구 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Activation"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "활성화 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "409": {
                        "description": "활성화 수 초과",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "디바이스 활성화 복구",
                "tags": [
                    "관리자 - 활성화"
                ]
            }
        },
        "/api/admin/activations/{id}/revoke": {
            "post": {
                "parameters": [
                    {
                        "description": "ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "해제 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Activation"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "활성화 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "디바이스 활성화 해제",
                "tags": [
                    "관리자 - 활성화"
                ]
            }
        },
        "/api/admin/admins": {
            "get": {
                "description": "전체 관리자 계정을 조회합니다 (superadmin 전용)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "조회 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/models.Admin"
                                            },
                                            "type": "array"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "403": {
                        "description": "권한 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "관리자 목록",
                "tags": [
                    "관리자 - 계정"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "새 관리자 계정을 만듭니다. role 을 비우면 admin 입니다",
                "parameters": [
                    {
                        "description": "계정 정보",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CreateAdminRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "생성 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Admin"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "잘못된 요청",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "409": {
                        "description": "중복 아이디",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "관리자 생성",
                "tags": [
                    "관리자 - 계정"
                ]
            }
        },
        "/api/admin/admins/{id}": {
            "delete": {
                "description": "관리자 계정을 삭제합니다. superadmin 과 본인 계정은 삭제할 수 없습니다",
                "parameters": [
                    {
                        "description": "관리자 ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "삭제 성공",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "403": {
                        "description": "보호된 계정",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "관리자 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "관리자 삭제",
                "tags": [
                    "관리자 - 계정"
                ]
            }
        },
        "/api/admin/admins/{id}/reset-password": {
            "post": {
                "description": "임시 비밀번호를 발급합니다. superadmin 과 본인 계정은 대상이 아닙니다",
                "parameters": [
                    {
                        "description": "관리자 ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "초기화 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.PasswordResetResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "403": {
                        "description": "보호된 계정",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "관리자 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "관리자 비밀번호 초기화",
                "tags": [
                    "관리자 - 계정"
                ]
            }
        },
        "/api/admin/audit-logs": {
            "get": {
                "parameters": [
                    {
                        "default": 100,
                        "description": "최대 건수",
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "조회 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/models.AdminActivityLog"
                                            },
                                            "type": "array"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "403": {
                        "description": "권한 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "관리자 활동 로그",
                "tags": [
                    "관리자 - 감사"
                ]
            }
        },
        "/api/admin/dashboard/activities": {
            "get": {
                "parameters": [
                    {
                        "default": 100,
                        "description": "최대 건수",
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "조회 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/models.ActivationLog"
                                            },
                                            "type": "array"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "최근 활성화 이벤트",
                "tags": [
                    "관리자 - 대시보드"
                ]
            }
        },
        "/api/admin/dashboard/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "조회 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.DashboardStats"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "대시보드 통계",
                "tags": [
                    "관리자 - 대시보드"
                ]
            }
        },
        "/api/admin/licenses": {
            "get": {
                "parameters": [
                    {
                        "description": "상태 필터 (active, suspended, revoked)",
                        "in": "query",
                        "name": "status",
                        "type": "string"
                    },
                    {
                        "description": "라이선스 키 또는 고객명",
                        "in": "query",
                        "name": "search",
                        "type": "string"
                    },
                    {
                        "default": 1,
                        "description": "페이지 번호",
                        "in": "query",
                        "name": "page",
                        "type": "integer"
                    },
                    {
                        "default": 20,
                        "description": "페이지 크기",
                        "in": "query",
                        "name": "page_size",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "조회 성공",
                        "schema": {
                            "$ref": "#/definitions/models.PaginatedResponse"
                        }
                    },
                    "401": {
                        "description": "인증 필요",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "라이선스 목록 조회",
                "tags": [
                    "관리자 - 라이선스"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "라이선스 정보",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CreateLicenseRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "생성 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.License"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "잘못된 요청",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "409": {
                        "description": "중복 라이선스 키",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "라이선스 생성",
                "tags": [
                    "관리자 - 라이선스"
                ]
            }
        },
        "/api/admin/licenses/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "조회 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.LicenseDetail"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "라이선스 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "라이선스 상세 조회",
                "tags": [
                    "관리자 - 라이선스"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "수정 정보",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.UpdateLicenseRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "수정 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.License"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "잘못된 요청",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "라이선스 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "라이선스 수정",
                "tags": [
                    "관리자 - 라이선스"
                ]
            }
        },
        "/api/admin/licenses/{id}/activations": {
            "get": {
                "parameters": [
                    {
                        "description": "ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "조회 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/models.Activation"
                                            },
                                            "type": "array"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "라이선스 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "라이선스 활성화 목록",
                "tags": [
                    "관리자 - 라이선스"
                ]
            }
        },
        "/api/admin/licenses/{id}/events": {
            "get": {
                "parameters": [
                    {
                        "description": "ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "default": 100,
                        "description": "최대 건수",
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "조회 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/models.ActivationLog"
                                            },
                                            "type": "array"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "라이선스 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "활성화 이벤트 로그",
                "tags": [
                    "관리자 - 라이선스"
                ]
            }
        },
        "/api/admin/licenses/{id}/revoke": {
            "post": {
                "parameters": [
                    {
                        "description": "ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "폐기 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.License"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "라이선스 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "라이선스 폐기",
                "tags": [
                    "관리자 - 라이선스"
                ]
            }
        },
        "/api/admin/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "관리자 계정으로 로그인하여 JWT 토큰을 발급받습니다",
                "parameters": [
                    {
                        "description": "로그인 정보",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.LoginRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "로그인 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.LoginResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "잘못된 요청",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "401": {
                        "description": "인증 실패",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "summary": "관리자 로그인",
                "tags": [
                    "인증"
                ]
            }
        },
        "/api/admin/releases": {
            "get": {
                "description": "등록된 릴리스를 최신순으로 조회합니다",
                "parameters": [
                    {
                        "description": "플랫폼 필터",
                        "in": "query",
                        "name": "platform",
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "조회 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "items": {
                                                "$ref": "#/definitions/models.Release"
                                            },
                                            "type": "array"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "릴리스 목록",
                "tags": [
                    "관리자 - 릴리스"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "is_latest 가 true 면 같은 플랫폼의 기존 latest 는 해제됩니다",
                "parameters": [
                    {
                        "description": "릴리스 정보",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.CreateReleaseRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "등록 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Release"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "잘못된 요청",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "409": {
                        "description": "중복 버전",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "릴리스 등록",
                "tags": [
                    "관리자 - 릴리스"
                ]
            }
        },
        "/api/admin/releases/{id}/set-latest": {
            "post": {
                "description": "해당 릴리스를 플랫폼의 latest 로 지정합니다 (롤백에도 사용)",
                "parameters": [
                    {
                        "description": "릴리스 ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "지정 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Release"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "릴리스 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "latest 릴리스 지정",
                "tags": [
                    "관리자 - 릴리스"
                ]
            }
        },
        "/api/v1/activate": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "라이선스 키를 디바이스에 바인딩하고 활성화 토큰을 발급합니다",
                "parameters": [
                    {
                        "description": "활성화 정보",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.ActivateRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "재활성화",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.ActivateResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "201": {
                        "description": "신규 활성화",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.ActivateResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "잘못된 요청",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "403": {
                        "description": "라이선스 무효 또는 디바이스 해제됨",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "라이선스 없음",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "409": {
                        "description": "활성화 수 초과",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "429": {
                        "description": "요청 과다",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "저장소 일시 장애",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "summary": "라이선스 활성화",
                "tags": [
                    "클라이언트 - 라이선스"
                ]
            }
        },
        "/api/v1/deactivate": {
            "post": {
                "description": "토큰의 디바이스 활성화를 해제합니다",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "해제 완료",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.DeactivateResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "토큰 무효",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "저장소 일시 장애",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "활성화 해제",
                "tags": [
                    "클라이언트 - 라이선스"
                ]
            }
        },
        "/api/v1/releases/latest": {
            "get": {
                "description": "current_version 보다 새로운 latest 릴리스가 있으면 다운로드 정보를 반환합니다",
                "parameters": [
                    {
                        "default": "windows",
                        "description": "플랫폼 (windows, macos, linux)",
                        "in": "query",
                        "name": "platform",
                        "type": "string"
                    },
                    {
                        "default": "0.0.0",
                        "description": "현재 앱 버전",
                        "in": "query",
                        "name": "current_version",
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "확인 성공",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.LatestReleaseResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "503": {
                        "description": "저장소 일시 장애",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "summary": "최신 릴리스 확인",
                "tags": [
                    "클라이언트 - 릴리스"
                ]
            }
        },
        "/api/v1/validate": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "활성화 토큰과 현재 라이선스/디바이스 상태를 대조합니다",
                "parameters": [
                    {
                        "description": "앱 버전",
                        "in": "body",
                        "name": "request",
                        "schema": {
                            "$ref": "#/definitions/models.ValidateRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "검증 결과",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.ValidateResponse"
                                        }
                                    },
                                    "type": "object"
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "토큰 누락",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "429": {
                        "description": "요청 과다",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "저장소 일시 장애",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "활성화 토큰 검증",
                "tags": [
                    "클라이언트 - 라이선스"
                ]
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "정상",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "데이터베이스 연결 불가",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                },
                "summary": "헬스체크",
                "tags": [
                    "시스템"
                ]
            }
        }
    },
    "definitions": {
        "models.APIResponse": {
            "properties": {
                "code": {
                    "type": "string"
                },
                "data": {},
                "error": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.ActivateRequest": {
            "properties": {
                "app_version": {
                    "maxLength": 64,
                    "type": "string"
                },
                "device_fingerprint": {
                    "maxLength": 512,
                    "type": "string"
                },
                "device_label": {
                    "maxLength": 128,
                    "type": "string"
                },
                "license_key": {
                    "maxLength": 128,
                    "type": "string"
                }
            },
            "required": [
                "app_version",
                "device_fingerprint",
                "license_key"
            ],
            "type": "object"
        },
        "models.ActivateResponse": {
            "properties": {
                "activation": {
                    "$ref": "#/definitions/models.ActivationView"
                },
                "activation_token": {
                    "type": "string"
                },
                "grace_days": {
                    "type": "integer"
                },
                "license": {
                    "$ref": "#/definitions/models.LicenseView"
                },
                "token_expires_at": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.Activation": {
            "properties": {
                "activated_app_version": {
                    "type": "string"
                },
                "device_id_hash": {
                    "type": "string"
                },
                "device_label": {
                    "type": "string"
                },
                "first_activated_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "last_seen_at": {
                    "type": "string"
                },
                "license_id": {
                    "type": "string"
                },
                "revoked_at": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.ActivationLog": {
            "properties": {
                "action": {
                    "type": "string"
                },
                "activation_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "details": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "license_id": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.ActivationView": {
            "properties": {
                "activated_app_version": {
                    "type": "string"
                },
                "device_label": {
                    "type": "string"
                },
                "first_activated_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "last_seen_at": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.Admin": {
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.AdminActivityLog": {
            "properties": {
                "action": {
                    "type": "string"
                },
                "admin_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "details": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "username": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.CreateAdminRequest": {
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "role": {
                    "enum": [
                        "admin",
                        "superadmin"
                    ],
                    "type": "string"
                },
                "username": {
                    "type": "string"
                }
            },
            "required": [
                "email",
                "password",
                "username"
            ],
            "type": "object"
        },
        "models.CreateLicenseRequest": {
            "properties": {
                "customer_name": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "license_key": {
                    "type": "string"
                },
                "max_activations": {
                    "type": "integer"
                },
                "notes": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.CreateReleaseRequest": {
            "properties": {
                "download_url": {
                    "type": "string"
                },
                "is_latest": {
                    "type": "boolean"
                },
                "platform": {
                    "enum": [
                        "windows",
                        "macos",
                        "linux"
                    ],
                    "type": "string"
                },
                "release_notes": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            },
            "required": [
                "download_url",
                "version"
            ],
            "type": "object"
        },
        "models.DashboardStats": {
            "properties": {
                "active_activations": {
                    "type": "integer"
                },
                "active_licenses": {
                    "type": "integer"
                },
                "expired_licenses": {
                    "type": "integer"
                },
                "revoked_licenses": {
                    "type": "integer"
                },
                "suspended_licenses": {
                    "type": "integer"
                },
                "total_licenses": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "models.DeactivateResponse": {
            "properties": {
                "activation_id": {
                    "type": "string"
                },
                "deactivated": {
                    "type": "boolean"
                }
            },
            "type": "object"
        },
        "models.LatestReleaseResponse": {
            "properties": {
                "download_url": {
                    "type": "string"
                },
                "latest_version": {
                    "type": "string"
                },
                "release_notes": {
                    "type": "string"
                },
                "update_available": {
                    "type": "boolean"
                }
            },
            "type": "object"
        },
        "models.License": {
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "customer_name": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "license_key": {
                    "type": "string"
                },
                "max_activations": {
                    "type": "integer"
                },
                "notes": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.LicenseDetail": {
            "properties": {
                "activations": {
                    "items": {
                        "$ref": "#/definitions/models.Activation"
                    },
                    "type": "array"
                },
                "active_count": {
                    "type": "integer"
                },
                "created_at": {
                    "type": "string"
                },
                "customer_name": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "license_key": {
                    "type": "string"
                },
                "max_activations": {
                    "type": "integer"
                },
                "notes": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.LicenseView": {
            "properties": {
                "customer_name": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "max_activations": {
                    "type": "integer"
                },
                "status": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.LoginRequest": {
            "properties": {
                "password": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                }
            },
            "required": [
                "password",
                "username"
            ],
            "type": "object"
        },
        "models.LoginResponse": {
            "properties": {
                "admin": {
                    "$ref": "#/definitions/models.Admin"
                },
                "expires_at": {
                    "type": "string"
                },
                "token": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.PaginatedResponse": {
            "properties": {
                "data": {},
                "message": {
                    "type": "string"
                },
                "meta": {
                    "$ref": "#/definitions/models.Pagination"
                },
                "status": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.Pagination": {
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                },
                "total_pages": {
                    "type": "integer"
                }
            },
            "type": "object"
        },
        "models.PasswordResetResponse": {
            "properties": {
                "admin_id": {
                    "type": "string"
                },
                "temp_password": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.Release": {
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "created_by": {
                    "type": "string"
                },
                "download_url": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "is_latest": {
                    "type": "boolean"
                },
                "platform": {
                    "type": "string"
                },
                "release_notes": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.UpdateLicenseRequest": {
            "properties": {
                "customer_name": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "max_activations": {
                    "type": "integer"
                },
                "notes": {
                    "type": "string"
                },
                "status": {
                    "enum": [
                        "active",
                        "suspended",
                        "revoked"
                    ],
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.ValidateRequest": {
            "properties": {
                "app_version": {
                    "maxLength": 64,
                    "type": "string"
                }
            },
            "type": "object"
        },
        "models.ValidateResponse": {
            "properties": {
                "expires_at": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "server_time": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "valid": {
                    "type": "boolean"
                }
            },
            "type": "object"
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT 토큰을 입력하세요. 형식: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Device License Server API",
	Description:      "디바이스 바인딩 라이선스 활성화/검증 서버",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
