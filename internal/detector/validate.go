package detector

import "fmt"

// ValidateConfig statically checks a detection configuration. Checks run in
// a fixed order and the first failing rule is returned as a
// *ValidationError naming that rule. A config that fails validation must
// never be handed to a Finder.
func ValidateConfig(cfg Config) error {
	if cfg.CenterColor.Hues.Empty() {
		return &ValidationError{Rule: "centerColor.hues", Message: "at least one hue range is required"}
	}
	if err := validateChannelRange(cfg.CenterColor.SatRange, "centerColor.satRange"); err != nil {
		return err
	}
	if err := validateChannelRange(cfg.CenterColor.ValRange, "centerColor.valRange"); err != nil {
		return err
	}
	if cfg.Shape.MinArea < 1 {
		return &ValidationError{Rule: "shape.minArea", Message: "must be >= 1"}
	}
	if cfg.Shape.MaxArea < cfg.Shape.MinArea {
		return &ValidationError{Rule: "shape.maxArea", Message: "must be >= shape.minArea"}
	}
	if cfg.Shape.MinCircularity < 0 || cfg.Shape.MinCircularity > 1 {
		return &ValidationError{Rule: "shape.minCircularity", Message: "must be in [0,1]"}
	}
	if cfg.Shape.MinFillRatio < 0 || cfg.Shape.MinFillRatio > 1 {
		return &ValidationError{Rule: "shape.minFillRatio", Message: "must be in [0,1]"}
	}
	if cfg.Context.Enabled {
		if cfg.Context.InnerRadiusPercent < 1 || cfg.Context.OuterRadiusPercent <= cfg.Context.InnerRadiusPercent {
			return &ValidationError{
				Rule:    "context.radiusPercents",
				Message: "must satisfy 1 <= innerRadiusPercent < outerRadiusPercent",
			}
		}
		if cfg.Context.MinSupportRatio < 0 || cfg.Context.MinSupportRatio > 1 {
			return &ValidationError{Rule: "context.minSupportRatio", Message: "must be in [0,1]"}
		}
		if err := validateChannelRange(cfg.Context.SupportColor.SatRange, "context.supportColor.satRange"); err != nil {
			return err
		}
		if err := validateChannelRange(cfg.Context.SupportColor.ValRange, "context.supportColor.valRange"); err != nil {
			return err
		}
		if err := validateChannelRange(cfg.Context.ExcludeSatRange, "context.excludeSatRange"); err != nil {
			return err
		}
		if err := validateChannelRange(cfg.Context.ExcludeValRange, "context.excludeValRange"); err != nil {
			return err
		}
	}
	return nil
}

func validateChannelRange(r ChannelRange, rule string) error {
	if r.MinValue < 0 || r.MinValue > 255 || r.MaxValue < 0 || r.MaxValue > 255 {
		return &ValidationError{Rule: rule, Message: "bounds must be within [0,255]"}
	}
	if r.MinValue > r.MaxValue {
		return &ValidationError{
			Rule:    rule,
			Message: fmt.Sprintf("minValue %d must be <= maxValue %d", r.MinValue, r.MaxValue),
		}
	}
	return nil
}
