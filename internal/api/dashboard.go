package api

import "net/http"

// handleDashboard serves the embedded single-page UI. Slider domains and
// defaults come from /api/v1/params so the page never duplicates them.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	observeRequest("dashboard")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardHTML))
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Smart Agriculture Simulator</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 0; background: #f4f7f4; color: #223; }
  header { background: #2d6a4f; color: #fff; padding: 14px 24px; }
  header h1 { margin: 0; font-size: 20px; }
  main { display: grid; grid-template-columns: 320px 1fr; gap: 16px; padding: 16px 24px; }
  .panel { background: #fff; border-radius: 8px; padding: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.12); }
  .panel h2 { margin: 0 0 12px; font-size: 15px; }
  label { display: block; font-size: 13px; margin-top: 10px; }
  input[type=range] { width: 100%; }
  select, button { margin-top: 8px; padding: 6px 10px; font-size: 14px; }
  button { background: #2d6a4f; color: #fff; border: 0; border-radius: 4px; cursor: pointer; }
  button:hover { background: #40916c; }
  .readout { font-size: 28px; font-weight: 700; color: #1b4332; margin: 8px 0; }
  .sub { font-size: 12px; color: #667; }
  canvas { width: 100%; background: #fcfffc; border: 1px solid #dde5dd; border-radius: 4px; }
  pre { font-size: 12px; background: #f0f4f0; padding: 8px; border-radius: 4px; overflow: auto; }
</style>
</head>
<body>
<header><h1>🌿 Smart Agriculture Simulator</h1></header>
<main>
  <div class="panel">
    <h2>Simulation Settings</h2>
    <label>Crop <select id="crop"></select></label>
    <div id="sliders"></div>
    <label>Sweep variable <select id="sweepvar"></select></label>
    <label>Simulation days <input type="range" id="days" min="30" max="180" value="120">
      <span class="sub" id="daysval">120</span></label>
    <button id="run">🚀 Run Season Simulation</button>
  </div>
  <div>
    <div class="panel">
      <h2>Yield Estimate</h2>
      <div class="readout" id="yield">—</div>
      <div class="sub" id="growth"></div>
      <canvas id="sweep" width="900" height="260"></canvas>
    </div>
    <div class="panel" style="margin-top:16px">
      <h2>Season Run</h2>
      <canvas id="season" width="900" height="260"></canvas>
      <pre id="report">Run a season simulation to see the report.</pre>
    </div>
  </div>
</main>
<script>
const state = { params: {}, sliders: [] };

function qs(extra) {
  const q = new URLSearchParams(state.params);
  q.set("crop", document.getElementById("crop").value);
  for (const k in (extra || {})) q.set(k, extra[k]);
  return q.toString();
}

async function refreshYield() {
  const res = await fetch("/api/v1/yield?" + qs());
  const data = await res.json();
  if (data.error) return;
  document.getElementById("yield").textContent =
    data.result.yield_kg.toLocaleString(undefined, {maximumFractionDigits: 0}) + " kg";
  document.getElementById("growth").textContent =
    "growth rate " + data.result.growth_rate.toFixed(3) + " · " + data.crop;
  refreshSweep();
}

async function refreshSweep() {
  const v = document.getElementById("sweepvar").value;
  const res = await fetch("/api/v1/sweep?" + qs({ var: v, steps: 60 }));
  const data = await res.json();
  if (data.error) return;
  plot(document.getElementById("sweep"),
    [{ pts: data.series.map(p => [p.input, p.yield_kg]), color: "#2d6a4f" }],
    v + " → yield (kg)");
}

async function runSeason() {
  const body = {
    crop: document.getElementById("crop").value,
    area_ha: parseFloat(state.params.area_ha),
    days: parseInt(document.getElementById("days").value, 10),
  };
  const res = await fetch("/api/v1/simulate", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify(body),
  });
  const data = await res.json();
  if (data.error) { document.getElementById("report").textContent = data.error; return; }
  document.getElementById("report").textContent = JSON.stringify(data.report, null, 2);
  plot(document.getElementById("season"), [
    { pts: data.series.map(d => [d.day, d.growth * 100]), color: "#2d6a4f" },
    { pts: data.series.map(d => [d.day, d.soil_moisture * 100]), color: "#1d7aa2" },
    { pts: data.series.map(d => [d.day, d.pest_pressure * 100]), color: "#b02e2e" },
  ], "day → growth % (green), moisture % (blue), pest % (red)");
}

function plot(canvas, lines, label) {
  const ctx = canvas.getContext("2d");
  const W = canvas.width, H = canvas.height, pad = 36;
  ctx.clearRect(0, 0, W, H);
  let xmin = Infinity, xmax = -Infinity, ymin = 0, ymax = -Infinity;
  for (const l of lines) for (const [x, y] of l.pts) {
    xmin = Math.min(xmin, x); xmax = Math.max(xmax, x); ymax = Math.max(ymax, y);
  }
  if (!isFinite(xmin) || xmax === xmin) return;
  if (ymax <= ymin) ymax = ymin + 1;
  const X = x => pad + (x - xmin) / (xmax - xmin) * (W - 2 * pad);
  const Y = y => H - pad - (y - ymin) / (ymax - ymin) * (H - 2 * pad);
  ctx.strokeStyle = "#ccd5cc";
  ctx.strokeRect(pad, pad, W - 2 * pad, H - 2 * pad);
  ctx.fillStyle = "#667";
  ctx.font = "11px sans-serif";
  ctx.fillText(label, pad, 16);
  ctx.fillText(ymax.toFixed(0), 4, pad + 4);
  ctx.fillText(xmin.toFixed(1), pad, H - 12);
  ctx.fillText(xmax.toFixed(1), W - pad - 20, H - 12);
  for (const l of lines) {
    ctx.strokeStyle = l.color;
    ctx.lineWidth = 1.8;
    ctx.beginPath();
    l.pts.forEach(([x, y], i) => i ? ctx.lineTo(X(x), Y(y)) : ctx.moveTo(X(x), Y(y)));
    ctx.stroke();
  }
}

async function init() {
  const [sliders, crops, status] = await Promise.all([
    fetch("/api/v1/params").then(r => r.json()),
    fetch("/api/v1/crops").then(r => r.json()),
    fetch("/api/v1/status").then(r => r.json()),
  ]);

  const cropSel = document.getElementById("crop");
  for (const c of crops) {
    const o = document.createElement("option");
    o.value = c.name; o.textContent = c.name;
    cropSel.appendChild(o);
  }
  cropSel.onchange = refreshYield;

  const sweepSel = document.getElementById("sweepvar");
  for (const v of status.sweep_vars) {
    const o = document.createElement("option");
    o.value = v; o.textContent = v;
    sweepSel.appendChild(o);
  }
  sweepSel.value = "rainfall";
  sweepSel.onchange = refreshSweep;

  const box = document.getElementById("sliders");
  for (const s of sliders) {
    state.params[s.key] = s.default;
    const label = document.createElement("label");
    label.textContent = s.label + " ";
    const val = document.createElement("span");
    val.className = "sub"; val.textContent = s.default;
    const input = document.createElement("input");
    input.type = "range"; input.min = s.min; input.max = s.max;
    input.step = s.step; input.value = s.default;
    input.oninput = () => {
      state.params[s.key] = input.value;
      val.textContent = input.value;
      refreshYield();
    };
    label.appendChild(val); label.appendChild(input);
    box.appendChild(label);
  }

  const days = document.getElementById("days");
  days.oninput = () => document.getElementById("daysval").textContent = days.value;
  document.getElementById("run").onclick = runSeason;

  refreshYield();
}

init();
</script>
</body>
</html>
`
