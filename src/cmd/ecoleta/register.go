package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jackyeh168/ecoleta/src/internal/application/wizard"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/apiclient"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/ibge"
	"github.com/spf13/cobra"
)

// registrationForm register 指令收集的欄位
type registrationForm struct {
	Name     string
	Email    string
	WhatsApp string
	UF       string
	City     string
	Items    []int64

	// HasPosition 未指定 --lat/--lng 時使用初始位置
	HasPosition bool
	Latitude    float64
	Longitude   float64
}

func newRegisterCmd() *cobra.Command {
	var form registrationForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a collection point through the wizard",
		Long: `Load items and states, select the state and city, then submit the point to the API.
Without --lat/--lng the point is placed at DEFAULT_LATITUDE/DEFAULT_LONGITUDE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			form.HasPosition = cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng")

			api := apiclient.NewClient(cfg.APIURL, nil)
			session := wizard.NewSession(
				api,
				ibge.NewClient(cfg.IBGEBaseURL, nil),
				nil,
				api,
				wizard.Options{
					Timeout: cfg.WizardTimeout,
					DefaultPosition: wizard.Position{
						Latitude:  cfg.DefaultLatitude,
						Longitude: cfg.DefaultLongitude,
					},
					Logger: logger,
				},
			)

			result, err := runWizard(cmd.Context(), session, form)
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), result)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "Entity name")
	f.StringVar(&form.Email, "email", "", "Contact e-mail")
	f.StringVar(&form.WhatsApp, "whatsapp", "", "WhatsApp number")
	f.StringVar(&form.UF, "uf", "", "State code, e.g. SP")
	f.StringVar(&form.City, "city", "", "City name as listed by IBGE")
	f.Float64Var(&form.Latitude, "lat", 0, "Point latitude")
	f.Float64Var(&form.Longitude, "lng", 0, "Point longitude")
	f.Int64SliceVar(&form.Items, "items", nil, "Accepted item ids, comma separated")
	for _, name := range []string{"name", "email", "whatsapp", "uf", "city", "items"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// runWizard 依序執行精靈步驟並送出
func runWizard(ctx context.Context, s *wizard.Session, form registrationForm) (*wizard.RegisteredPoint, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	if err := s.SelectUF(ctx, form.UF); err != nil {
		return nil, err
	}
	if err := s.SelectCity(form.City); err != nil {
		return nil, err
	}

	fields := []struct{ name, value string }{
		{wizard.FieldName, form.Name},
		{wizard.FieldEmail, form.Email},
		{wizard.FieldWhatsApp, form.WhatsApp},
	}
	for _, f := range fields {
		if err := s.SetField(f.name, f.value); err != nil {
			return nil, err
		}
	}

	if form.HasPosition {
		if err := s.SetPosition(form.Latitude, form.Longitude); err != nil {
			return nil, err
		}
	}

	seen := make(map[int64]bool, len(form.Items))
	for _, id := range form.Items {
		if seen[id] {
			continue
		}
		seen[id] = true
		if err := s.ToggleItem(id); err != nil {
			return nil, err
		}
	}

	return s.Submit(ctx)
}

func printConfirmation(w io.Writer, p *wizard.RegisteredPoint) {
	fmt.Fprintln(w, wizard.ConfirmationMessage)
	fmt.Fprintf(w, "id=%d name=%q city=%s uf=%s items=%v\n", p.ID, p.Name, p.City, p.UF, p.Items)
}
