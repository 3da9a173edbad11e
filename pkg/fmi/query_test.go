package fmi

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeValidation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name: "Valid_Hourly_Weather",
			req:  Request{Domain: Weather, Mode: ModeObservation, StartTime: &start, EndTime: &end},
		},
		{
			name:    "Start_After_End",
			req:     Request{Domain: Weather, Mode: ModeObservation, StartTime: &end, EndTime: &start},
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "Resolution_Not_Whole_Minutes",
			req:     Request{Domain: Weather, Mode: ModeObservation, Resolution: 90 * time.Second},
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "Resolution_Does_Not_Divide_Hour",
			req:     Request{Domain: Weather, Mode: ModeObservation, Resolution: 25 * time.Minute},
			wantErr: ErrInvalidQuery,
		},
		{
			name: "Resolution_Ten_Minutes",
			req:  Request{Domain: Weather, Mode: ModeObservation, Resolution: 10 * time.Minute},
		},
		{
			name: "Resolution_Three_Hours",
			req:  Request{Domain: Weather, Mode: ModeObservation, Resolution: 3 * time.Hour},
		},
		{
			name:    "Resolution_Five_Hours_Does_Not_Divide_Day",
			req:     Request{Domain: Weather, Mode: ModeObservation, Resolution: 5 * time.Hour},
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "Resolution_Ninety_Minutes_Not_Whole_Hours",
			req:     Request{Domain: Weather, Mode: ModeObservation, Resolution: 90 * time.Minute},
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "AirQuality_Observation_Below_Hourly",
			req:     Request{Domain: AirQuality, Mode: ModeObservation, Resolution: 10 * time.Minute},
			wantErr: ErrInvalidQuery,
		},
		{
			name: "AirQuality_Forecast_Below_Hourly",
			req:  Request{Domain: AirQuality, Mode: ModeForecast, Resolution: 10 * time.Minute},
		},
		{
			name:    "Empty_Parameter_List_After_Filter",
			req:     Request{Domain: Weather, Mode: ModeObservation, Parameters: []string{}},
			wantErr: ErrInvalidQuery,
		},
		{
			name: "Nil_Parameter_List_Is_Service_Default",
			req:  Request{Domain: Weather, Mode: ModeObservation, Parameters: nil},
		},
		{
			name:    "Unknown_Domain",
			req:     Request{Domain: Domain("tides"), Mode: ModeObservation},
			wantErr: ErrUnsupportedQuery,
		},
		{
			name:    "Unknown_Mode",
			req:     Request{Domain: Weather, Mode: Mode("hindcast")},
			wantErr: ErrUnsupportedQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.normalize(now)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("normalize failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	t.Run("Observation_Window", func(t *testing.T) {
		n, err := Request{Domain: Weather, Mode: ModeObservation}.normalize(now)
		if err != nil {
			t.Fatalf("normalize failed: %v", err)
		}
		wantEnd := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
		if !n.end.Equal(wantEnd) {
			t.Errorf("end: expected %s, got %s", wantEnd, n.end)
		}
		if !n.start.Equal(wantEnd.Add(-24 * time.Hour)) {
			t.Errorf("start: expected %s, got %s", wantEnd.Add(-24*time.Hour), n.start)
		}
		if n.fmisid != DefaultWeatherStation {
			t.Errorf("fmisid: expected %d, got %d", DefaultWeatherStation, n.fmisid)
		}
		if n.step != time.Hour {
			t.Errorf("step: expected 1h, got %s", n.step)
		}
	})

	t.Run("Forecast_Horizon", func(t *testing.T) {
		n, err := Request{Domain: Radiation, Mode: ModeForecast}.normalize(now)
		if err != nil {
			t.Fatalf("normalize failed: %v", err)
		}
		wantStart := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
		if !n.start.Equal(wantStart) {
			t.Errorf("start: expected %s, got %s", wantStart, n.start)
		}
		if !n.end.Equal(wantStart.Add(48 * time.Hour)) {
			t.Errorf("end: expected %s, got %s", wantStart.Add(48*time.Hour), n.end)
		}
		if n.fmisid != DefaultRadiationStation {
			t.Errorf("fmisid: expected %d, got %d", DefaultRadiationStation, n.fmisid)
		}
	})

	t.Run("Explicit_Range_Kept", func(t *testing.T) {
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
		n, err := Request{
			Domain:    Weather,
			Mode:      ModeObservation,
			StartTime: &start,
			EndTime:   &end,
			StationID: 101023,
		}.normalize(now)
		if err != nil {
			t.Fatalf("normalize failed: %v", err)
		}
		if !n.start.Equal(start) || !n.end.Equal(end) {
			t.Errorf("range not kept: %s - %s", n.start, n.end)
		}
		if n.fmisid != 101023 {
			t.Errorf("fmisid: expected 101023, got %d", n.fmisid)
		}
	})
}

func TestNormalizedValues(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	n, err := Request{
		Domain:     Weather,
		Mode:       ModeObservation,
		StationID:  100971,
		StartTime:  &start,
		EndTime:    &end,
		Resolution: 10 * time.Minute,
		Parameters: []string{"t2m", "rh"},
	}.normalize(now)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	params := n.values(n.start, n.end)
	expected := map[string]string{
		"request":        "getFeature",
		"storedquery_id": "fmi::observations::weather::multipointcoverage",
		"fmisid":         "100971",
		"starttime":      "2025-01-01T00:00:00Z",
		"endtime":        "2025-01-02T00:00:00Z",
		"timestep":       "10",
		"parameters":     "t2m,rh",
	}
	for key, want := range expected {
		if got := params.Get(key); got != want {
			t.Errorf("parameter %s: expected %q, got %q", key, want, got)
		}
	}

	t.Run("Nil_Parameters_Omitted", func(t *testing.T) {
		n, err := Request{
			Domain:    Weather,
			Mode:      ModeObservation,
			StartTime: &start,
			EndTime:   &end,
		}.normalize(now)
		if err != nil {
			t.Fatalf("normalize failed: %v", err)
		}
		if _, ok := n.values(n.start, n.end)["parameters"]; ok {
			t.Error("expected parameters to be omitted for nil list")
		}
	})
}

func TestStoredQueryTableExhaustive(t *testing.T) {
	domains := []Domain{Weather, Radiation, AirQuality}
	modes := []Mode{ModeObservation, ModeForecast}

	for _, domain := range domains {
		for _, mode := range modes {
			id, err := StoredQueryID(domain, mode)
			if err != nil {
				t.Errorf("%s/%s: no stored query mapping: %v", domain, mode, err)
			}
			if id == "" {
				t.Errorf("%s/%s: empty stored query id", domain, mode)
			}
		}
	}

	t.Run("Forecasts_Share_MEPS", func(t *testing.T) {
		weather, _ := StoredQueryID(Weather, ModeForecast)
		radiation, _ := StoredQueryID(Radiation, ModeForecast)
		if weather != radiation {
			t.Errorf("weather and radiation forecasts should share a model output: %s vs %s", weather, radiation)
		}
	})
}

func TestChunkLimits(t *testing.T) {
	t.Run("Short_Range_Single_Window", func(t *testing.T) {
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		end := start.Add(24 * time.Hour)
		windows := chunkLimits(start, end, time.Hour)
		if len(windows) != 1 {
			t.Fatalf("expected 1 window, got %d", len(windows))
		}
		if !windows[0].start.Equal(start) || !windows[0].end.Equal(end) {
			t.Errorf("unexpected window %v - %v", windows[0].start, windows[0].end)
		}
	})

	t.Run("Long_Range_Capped_At_168_Steps", func(t *testing.T) {
		hel, err := time.LoadLocation("Europe/Helsinki")
		if err != nil {
			t.Fatalf("load location: %v", err)
		}
		// Crosses the October DST transition, as the upstream limit is on
		// wall-clock independent step counts.
		start := time.Date(2014, 10, 23, 15, 0, 0, 0, hel)
		end := time.Date(2014, 10, 30, 18, 0, 0, 0, hel)
		for _, w := range chunkLimits(start, end, time.Hour) {
			if w.end.Sub(w.start) > 168*time.Hour {
				t.Errorf("window %v - %v exceeds 168 steps", w.start, w.end)
			}
		}
	})

	t.Run("Windows_Are_Contiguous", func(t *testing.T) {
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		end := start.Add(400 * time.Hour)
		windows := chunkLimits(start, end, time.Hour)
		if len(windows) < 2 {
			t.Fatalf("expected multiple windows, got %d", len(windows))
		}
		for i := 1; i < len(windows); i++ {
			if !windows[i].start.Equal(windows[i-1].end.Add(time.Hour)) {
				t.Errorf("window %d starts at %v, expected %v",
					i, windows[i].start, windows[i-1].end.Add(time.Hour))
			}
		}
		if !windows[len(windows)-1].end.Equal(end) {
			t.Errorf("last window ends at %v, expected %v", windows[len(windows)-1].end, end)
		}
	})

	t.Run("Sub_Hour_Steps_Shrink_Windows", func(t *testing.T) {
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		end := start.Add(48 * time.Hour)
		for _, w := range chunkLimits(start, end, 10*time.Minute) {
			steps := w.end.Sub(w.start) / (10 * time.Minute)
			if steps > 168 {
				t.Errorf("window %v - %v has %d steps", w.start, w.end, steps)
			}
		}
	})
}
