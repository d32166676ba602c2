package profiles_test

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	prof "github.com/ems-iodt/twinscale/cmd/twinctl/config/profiles"
)

var pemCert = []byte(`-----BEGIN CERTIFICATE-----
AAAA
-----END CERTIFICATE-----
`)

func TestConfig(t *testing.T) {
	t.Run("unmarshalling works well", func(t *testing.T) {
		conf, err := prof.Unmarshall([]byte(`
profname:
    apiRoot: "https://twind.example.com/api/v2"
    tenant: "acme"
    cert:
        ca: BASE64_ENCODED_CERT
`))
		if err != nil {
			t.Fatalf("failed to unmarshal.: %+v", err)
		}
		p, ok := conf["profname"]
		if !ok {
			t.Fatal("config has not profile")
		}

		expectedApiRoot := "https://twind.example.com/api/v2"
		if p.ApiRoot != expectedApiRoot {
			t.Errorf("prof.ApiRoot unmatch. (actual, expected) = (%s, %s)", p.ApiRoot, expectedApiRoot)
		}

		expectedTenant := "acme"
		if p.Tenant != expectedTenant {
			t.Errorf("prof.Tenant unmatch. (actual, expected) = (%s, %s)", p.Tenant, expectedTenant)
		}

		expectedCACert := "BASE64_ENCODED_CERT"
		if p.Cert.CA != expectedCACert {
			t.Errorf("prof.Cert.CA unmatch. (actual, expected) = (%v, %v)", p.Cert.CA, expectedCACert)
		}
	})
}

func TestTwinProfile(t *testing.T) {

	t.Run("verify profile", func(t *testing.T) {
		for name, testcase := range map[string]struct {
			prof      *prof.TwinProfile
			toBeValid error
		}{
			"all value is valid, it is valid": {
				prof: &prof.TwinProfile{
					ApiRoot: "https://twind.example.com/api/v2",
					Cert: prof.TwinCert{
						CA: base64.StdEncoding.EncodeToString(pemCert),
					},
				},
				toBeValid: nil,
			},
			"no CA cert is ok": {
				prof: &prof.TwinProfile{
					ApiRoot: "https://twind.example.com/api/v2",
					Cert:    prof.TwinCert{CA: ""},
				},
				toBeValid: nil,
			},
			"tenant may be empty": {
				prof: &prof.TwinProfile{
					ApiRoot: "https://twind.example.com/api/v2",
					Tenant:  "",
				},
				toBeValid: nil,
			},
			"when api url is broken, it is not valid": {
				prof: &prof.TwinProfile{
					ApiRoot: "not url",
					Cert:    prof.TwinCert{},
				},
				toBeValid: prof.ErrProfileInvalid,
			},
			"when CA cert is not PEM, it is not valid": {
				prof: &prof.TwinProfile{
					ApiRoot: "https://twind.example.com/api/v2",
					Cert: prof.TwinCert{
						CA: base64.StdEncoding.EncodeToString([]byte("broken cert")),
					},
				},
				toBeValid: prof.ErrProfileInvalid,
			},
		} {
			t.Run(name, func(t *testing.T) {
				actual := testcase.prof.Verify()
				if !errors.Is(actual, testcase.toBeValid) {
					t.Errorf(
						"verify result unmatch. (actual, expected) = (%v, %v)",
						actual, testcase.toBeValid,
					)
				}
			})
		}
	})
}

func TestProfileStore_Save(t *testing.T) {
	t.Run("it creates a new store file with the profile", func(t *testing.T) {
		temp := t.TempDir()
		path := filepath.Join(temp, "profile")

		store := prof.ProfileStore{
			"default": {
				ApiRoot: "https://twind.example.com/api/v2",
				Tenant:  "acme",
			},
		}
		if err := store.Save(path); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		loaded, err := prof.LoadProfileStore(path)
		if err != nil {
			t.Fatalf("failed to load saved store: %v", err)
		}
		p, ok := loaded["default"]
		if !ok {
			t.Fatal("saved profile is not found")
		}
		if p.ApiRoot != "https://twind.example.com/api/v2" || p.Tenant != "acme" {
			t.Errorf("unexpected profile: %+v", p)
		}

		if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
			t.Errorf("backup file should be removed after successful save")
		}
	})

	t.Run("it overwrites an existing store, keeping other profiles", func(t *testing.T) {
		temp := t.TempDir()
		path := filepath.Join(temp, "profile")

		store := prof.ProfileStore{
			"default": {ApiRoot: "https://twind.example.com/api/v2"},
		}
		if err := store.Save(path); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		store["staging"] = &prof.TwinProfile{ApiRoot: "https://staging.example.com/api/v2"}
		if err := store.Save(path); err != nil {
			t.Fatalf("failed to save again: %v", err)
		}

		loaded, err := prof.LoadProfileStore(path)
		if err != nil {
			t.Fatalf("failed to load saved store: %v", err)
		}
		if len(loaded) != 2 {
			t.Errorf("unexpected number of profiles: %d", len(loaded))
		}
	})

	t.Run("loading a missing file returns ErrProfileStoreNotFound", func(t *testing.T) {
		_, err := prof.LoadProfileStore(filepath.Join(t.TempDir(), "no-such-file"))
		if !errors.Is(err, prof.ErrProfileStoreNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
