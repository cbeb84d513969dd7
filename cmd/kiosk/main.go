// Kiosco de pantalla: el cliente que corre junto al monitor de una
// ubicación. Inicia sesión, guarda la sesión del dispositivo en disco,
// consulta el código activo cada rotación y lo imprime (o renderiza el
// QR como PNG para mostrarlo en pantalla).
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/tu-usuario/asistencia-pro/internal/application/dto"
	"github.com/tu-usuario/asistencia-pro/internal/application/session"
	"github.com/tu-usuario/asistencia-pro/internal/domain/entity"
	"github.com/tu-usuario/asistencia-pro/internal/infrastructure/localstore"
	"github.com/tu-usuario/asistencia-pro/pkg/logger"
)

func main() {
	var (
		apiURL      = flag.String("api", "http://localhost:8080", "URL base de la API")
		locationID  = flag.String("location", "", "ID de la ubicación de esta pantalla")
		kind        = flag.String("kind", "numeric", "kind a mostrar: color, numeric o qr")
		email       = flag.String("email", "", "email del encargado")
		password    = flag.String("password", "", "password del encargado")
		sessionPath = flag.String("session", defaultSessionPath(), "archivo de sesión del dispositivo")
		qrOut       = flag.String("qr-out", "challenge-qr.png", "PNG de salida para el kind qr")
		interval    = flag.Duration("interval", 20*time.Second, "periodo de consulta")
	)
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	if *locationID == "" || *email == "" || *password == "" {
		log.Fatal().Msg("se requieren -location, -email y -password")
	}
	if _, ok := entity.ParseChallengeKind(*kind); !ok {
		log.Fatal().Str("kind", *kind).Msg("kind debe ser color, numeric o qr")
	}

	store, err := localstore.NewFileStore(*sessionPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store de sesión")
	}
	mgr := session.NewManager(store)

	token, user, err := login(*apiURL, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("login")
	}

	// Si el dispositivo ya tenía sesión vigente se renueva; si no, se crea.
	if s, _ := mgr.Read(); s != nil && s.IdentityID == user.ID {
		if _, err := mgr.Renew(); err != nil {
			log.Fatal().Err(err).Msg("renovar sesión")
		}
	} else {
		role, ok := entity.ParseRole(user.Role)
		if !ok {
			log.Fatal().Str("role", user.Role).Msg("rol desconocido")
		}
		if _, err := mgr.Create(user.ID, user.Name, role, user.CompanyID, ""); err != nil {
			log.Fatal().Err(err).Msg("crear sesión")
		}
	}

	// La pantalla la opera un encargado (o un admin).
	if !mgr.Authorize(entity.RoleLocManager) && !mgr.Authorize(entity.RoleHRAdmin) {
		_ = mgr.Destroy()
		log.Fatal().Msg("la cuenta no puede operar la pantalla de una ubicación")
	}

	log.Info().
		Str("location", *locationID).
		Str("kind", *kind).
		Msg("kiosco iniciado")

	for {
		ch, err := fetchChallenge(*apiURL, token, *locationID, *kind)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("consultar código")
		case ch.Kind == string(entity.KindQR):
			if err := renderQR(ch.Value, *qrOut); err != nil {
				log.Warn().Err(err).Msg("renderizar QR")
			} else {
				log.Info().Str("file", *qrOut).Time("expires_at", ch.ExpiresAt).Msg("QR actualizado")
			}
		default:
			fmt.Printf("\n  >> %s <<   (vence %s)\n\n", ch.Value, ch.ExpiresAt.Format("15:04:05"))
		}
		time.Sleep(*interval)
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".asistencia/session.json"
	}
	return filepath.Join(home, ".asistencia", "session.json")
}

// login autentica contra la API y devuelve el bearer token y el usuario.
func login(apiURL, email, password string) (string, *dto.UserResponse, error) {
	body, _ := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	resp, err := http.Post(apiURL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("login: HTTP %d", resp.StatusCode)
	}
	var out dto.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", nil, err
	}
	return out.Token, &out.User, nil
}

// fetchChallenge consulta el código activo de la ubicación.
func fetchChallenge(apiURL, token, locationID, kind string) (*dto.ChallengeResponse, error) {
	req, err := http.NewRequest(http.MethodGet,
		fmt.Sprintf("%s/api/locations/%s/challenges/%s", apiURL, locationID, kind), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("challenge: HTTP %d", resp.StatusCode)
	}
	var out dto.ChallengeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// renderQR escribe el payload como PNG escaneable.
func renderQR(value, path string) error {
	code, err := qr.Encode(value, qr.M, qr.Auto)
	if err != nil {
		return err
	}
	scaled, err := barcode.Scale(code, 384, 384)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, scaled)
}
