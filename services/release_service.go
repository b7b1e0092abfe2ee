package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"devicelicense/models"
	"devicelicense/utils"
)

var (
	// ErrReleaseNotFound는 릴리스가 존재하지 않을 때 반환됩니다.
	ErrReleaseNotFound = errors.New("release not found")
	// ErrReleaseConflict는 같은 플랫폼에 같은 버전이 이미 있을 때 반환됩니다.
	ErrReleaseConflict = errors.New("release version already exists for platform")
	// ErrInvalidVersion는 버전 문자열이 semver 형식이 아닐 때 반환됩니다.
	ErrInvalidVersion = errors.New("version must be semantic (e.g. 1.4.2)")
)

// ReleaseService는 앱 릴리스 등록과 업데이트 확인을 담당합니다.
type ReleaseService interface {
	Create(ctx context.Context, actor Actor, req models.CreateReleaseRequest) (*models.Release, error)
	List(ctx context.Context, platform string) ([]*models.Release, error)
	SetLatest(ctx context.Context, id string) (*models.Release, error)
	// Latest currentVersion 보다 새로운 latest 릴리스가 있는지 확인합니다.
	Latest(ctx context.Context, platform, currentVersion string) (*models.LatestReleaseResponse, error)
}

type releaseService struct {
	db  SQLExecutor
	now func() time.Time
}

// NewReleaseService는 ReleaseService 구현체를 생성합니다.
func NewReleaseService(db SQLExecutor) ReleaseService {
	return &releaseService{db: db, now: utils.NowUTC}
}

const releaseColumns = `id, platform, version, release_notes, download_url, is_latest, created_by, created_at`

func scanRelease(row rowScanner) (*models.Release, error) {
	var (
		r         models.Release
		createdAt string
	)
	if err := row.Scan(&r.ID, &r.Platform, &r.Version, &r.ReleaseNotes, &r.DownloadURL, &r.IsLatest, &r.CreatedBy, &createdAt); err != nil {
		return nil, err
	}
	r.CreatedAt, _ = utils.ParseDBDate(createdAt)
	return &r, nil
}

// canonicalVersion "1.2.3" 이나 "v1.2.3" 을 semver 패키지 형식으로 맞춥니다.
func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func normalizePlatform(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return models.DefaultPlatform
	}
	return p
}

func (s *releaseService) Create(ctx context.Context, actor Actor, req models.CreateReleaseRequest) (*models.Release, error) {
	version := strings.TrimPrefix(strings.TrimSpace(req.Version), "v")
	if !semver.IsValid(canonicalVersion(version)) {
		return nil, ErrInvalidVersion
	}

	id, err := utils.GenerateID("rel")
	if err != nil {
		return nil, err
	}
	release := &models.Release{
		ID:           id,
		Platform:     normalizePlatform(req.Platform),
		Version:      version,
		ReleaseNotes: req.ReleaseNotes,
		DownloadURL:  strings.TrimSpace(req.DownloadURL),
		IsLatest:     req.IsLatest,
		CreatedBy:    actor.AdminID,
		CreatedAt:    s.now(),
	}

	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		if release.IsLatest {
			if _, err := tx.ExecContext(ctx,
				`UPDATE app_releases SET is_latest = 0 WHERE platform = ? AND is_latest = 1`, release.Platform); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO app_releases (`+releaseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			release.ID, release.Platform, release.Version, release.ReleaseNotes, release.DownloadURL,
			release.IsLatest, release.CreatedBy, utils.FormatDateTimeForDB(release.CreatedAt),
		)
		return err
	})
	if err != nil {
		err = classifyStoreError("create release", err)
		if IsStoreKind(err, StoreConflict) {
			return nil, ErrReleaseConflict
		}
		return nil, err
	}
	return release, nil
}

func (s *releaseService) List(ctx context.Context, platform string) ([]*models.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM app_releases`
	args := []any{}
	if platform != "" {
		query += ` WHERE platform = ?`
		args = append(args, normalizePlatform(platform))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyStoreError("list releases", err)
	}
	defer rows.Close()

	releases := []*models.Release{}
	for rows.Next() {
		r, err := scanRelease(rows)
		if err != nil {
			return nil, classifyStoreError("scan release", err)
		}
		releases = append(releases, r)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError("list releases", err)
	}
	return releases, nil
}

func (s *releaseService) SetLatest(ctx context.Context, id string) (*models.Release, error) {
	var release *models.Release
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		r, err := scanRelease(tx.QueryRowContext(ctx, `SELECT `+releaseColumns+` FROM app_releases WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE app_releases SET is_latest = 0 WHERE platform = ? AND is_latest = 1`, r.Platform); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE app_releases SET is_latest = 1 WHERE id = ?`, id); err != nil {
			return err
		}
		r.IsLatest = true
		release = r
		return nil
	})
	if err != nil {
		err = classifyStoreError("set latest release", err)
		if IsStoreKind(err, StoreNotFound) {
			return nil, ErrReleaseNotFound
		}
		return nil, err
	}
	return release, nil
}

func (s *releaseService) Latest(ctx context.Context, platform, currentVersion string) (*models.LatestReleaseResponse, error) {
	r, err := scanRelease(s.db.QueryRowContext(ctx,
		`SELECT `+releaseColumns+` FROM app_releases WHERE platform = ? AND is_latest = 1`, normalizePlatform(platform)))
	if err != nil {
		err = classifyStoreError("latest release", err)
		if IsStoreKind(err, StoreNotFound) {
			return &models.LatestReleaseResponse{}, nil
		}
		return nil, err
	}

	// 잘못된 current 버전은 semver 규칙상 어떤 정상 버전보다도 낮습니다.
	if semver.Compare(canonicalVersion(r.Version), canonicalVersion(currentVersion)) <= 0 {
		return &models.LatestReleaseResponse{}, nil
	}
	return &models.LatestReleaseResponse{
		UpdateAvailable: true,
		LatestVersion:   r.Version,
		ReleaseNotes:    r.ReleaseNotes,
		DownloadURL:     r.DownloadURL,
	}, nil
}
