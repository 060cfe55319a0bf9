package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"medibill/internal/auth"
	"medibill/internal/config"
	"medibill/internal/domain"
)

func newTokenCmd() *cobra.Command {
	var (
		role      string
		tenant    string
		user      string
		patientID string
		ttl       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token signed with MEDIBILL_JWT_SECRET",
		Example: `  billingctl token --role billing_staff --tenant 6f1c...
  billingctl token --role patient --tenant 6f1c... --patient pat-17 --ttl 1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.UserRole(role)
			if !domain.ValidRoles[r] {
				return fmt.Errorf("unknown role %q", role)
			}
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			userID := uuid.New()
			if user != "" {
				if userID, err = uuid.Parse(user); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}
			if r == domain.RolePatient && patientID == "" {
				return fmt.Errorf("--patient is required for the patient role")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, expiresAt, err := auth.NewTokens(&cfg.JWT).Issue(domain.Principal{
				TenantID:  tenantID,
				UserID:    userID,
				Role:      r,
				PatientID: patientID,
			}, ttl)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"access_token": token,
				"expires_at":   expiresAt.UTC(),
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", string(domain.RoleBillingStaff), "Role claim")
	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant ID claim")
	cmd.Flags().StringVar(&user, "user", "", "User ID claim (random when empty)")
	cmd.Flags().StringVar(&patientID, "patient", "", "Patient ID claim (patient role only)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to MEDIBILL_JWT_ACCESS_EXPIRY)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}
