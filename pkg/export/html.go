package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/render"
	"github.com/dd0wney/graphlens/pkg/simulation"
)

type htmlNode struct {
	NodeViz
	Color  string  `json:"color"`
	Radius float64 `json:"radius"`
}

// GenerateHTML creates a self-contained HTML page showing the laid-out
// graph on a canvas with pan and zoom. No external assets are needed.
func GenerateHTML(title string, snap *graph.Snapshot, positions map[string]simulation.Position) (string, error) {
	data := BuildVizData(snap, positions)

	nodes := make([]htmlNode, 0, len(data.Nodes))
	for _, n := range data.Nodes {
		radius := simulation.RegularNodeRadius
		if n.ID == data.CenterNodeID {
			radius = simulation.CenterNodeRadius
		}
		nodes = append(nodes, htmlNode{
			NodeViz: n,
			Color:   render.NodeColor(graph.NodeType(n.Type)),
			Radius:  radius,
		})
	}

	payload, err := json.Marshal(map[string]any{
		"nodes":  nodes,
		"edges":  data.Edges,
		"center": data.CenterNodeID,
	})
	if err != nil {
		return "", fmt.Errorf("marshal graph data: %w", err)
	}

	if title == "" {
		title = "Graph Layout"
	}
	return generateGraphHTML(title, string(payload)), nil
}

// WriteHTML writes the interactive page to path.
func WriteHTML(path, title string, snap *graph.Snapshot, positions map[string]simulation.Position) error {
	html, err := GenerateHTML(title, snap, positions)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func generateGraphHTML(title, graphDataJSON string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
  :root {
    --bg: #202124;
    --fg: #e5e7eb;
    --muted: #9aa0a6;
    --edge: #6b7280;
    --halo: #f9ab00;
  }
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body { background: var(--bg); color: var(--fg); font-family: system-ui, sans-serif; height: 100vh; display: flex; flex-direction: column; overflow: hidden; }
  header { padding: 0.6rem 1rem; display: flex; justify-content: space-between; align-items: center; border-bottom: 1px solid #3c4043; }
  h1 { font-size: 1rem; font-weight: 600; }
  .stats { font-size: 0.75rem; color: var(--muted); }
  #canvas { flex: 1; cursor: grab; }
  #canvas.dragging { cursor: grabbing; }
</style>
</head>
<body>
<header>
  <h1>%s</h1>
  <div class="stats" id="stats"></div>
</header>
<canvas id="canvas"></canvas>
<script>
const data = %s;
const canvas = document.getElementById('canvas');
const ctx = canvas.getContext('2d');
const byId = Object.fromEntries(data.nodes.map(n => [n.id, n]));
let scale = 1, tx = 0, ty = 0;

document.getElementById('stats').textContent =
  data.nodes.length + ' nodes, ' + data.edges.length + ' edges';

function resize() {
  canvas.width = canvas.clientWidth * devicePixelRatio;
  canvas.height = canvas.clientHeight * devicePixelRatio;
  draw();
}

function draw() {
  ctx.setTransform(devicePixelRatio, 0, 0, devicePixelRatio, 0, 0);
  ctx.clearRect(0, 0, canvas.clientWidth, canvas.clientHeight);
  ctx.translate(tx, ty);
  ctx.scale(scale, scale);

  ctx.strokeStyle = 'var(--edge)';
  ctx.strokeStyle = '#6b7280';
  ctx.lineWidth = 1 / scale;
  for (const e of data.edges) {
    const s = byId[e.source], t = byId[e.target];
    if (!s || !t) continue;
    ctx.beginPath();
    ctx.moveTo(s.x, s.y);
    ctx.lineTo(t.x, t.y);
    ctx.stroke();
    if (e.type) {
      ctx.fillStyle = '#9ca3af';
      ctx.font = (10 / scale) + 'px system-ui';
      ctx.textAlign = 'center';
      ctx.fillText(e.type, (s.x + t.x) / 2, (s.y + t.y) / 2);
    }
  }

  for (const n of data.nodes) {
    if (n.id === data.center) {
      ctx.beginPath();
      ctx.arc(n.x, n.y, n.radius + 4, 0, 2 * Math.PI);
      ctx.strokeStyle = '#f9ab00';
      ctx.lineWidth = 3 / scale;
      ctx.stroke();
    }
    ctx.beginPath();
    ctx.arc(n.x, n.y, n.radius, 0, 2 * Math.PI);
    ctx.fillStyle = n.color;
    ctx.fill();
    if (n.label) {
      ctx.fillStyle = '#e5e7eb';
      ctx.font = (12 / scale) + 'px system-ui';
      ctx.textAlign = 'center';
      ctx.fillText(n.label, n.x, n.y + n.radius + 14 / scale);
    }
  }
}

let dragging = false, lastX = 0, lastY = 0;
canvas.addEventListener('mousedown', e => {
  dragging = true; lastX = e.offsetX; lastY = e.offsetY;
  canvas.classList.add('dragging');
});
window.addEventListener('mouseup', () => {
  dragging = false;
  canvas.classList.remove('dragging');
});
canvas.addEventListener('mousemove', e => {
  if (!dragging) return;
  tx += e.offsetX - lastX; ty += e.offsetY - lastY;
  lastX = e.offsetX; lastY = e.offsetY;
  draw();
});
canvas.addEventListener('wheel', e => {
  e.preventDefault();
  const factor = Math.pow(1.1, -e.deltaY / 100);
  const next = Math.min(3, Math.max(0.3, scale * factor));
  tx = e.offsetX - (e.offsetX - tx) * (next / scale);
  ty = e.offsetY - (e.offsetY - ty) * (next / scale);
  scale = next;
  draw();
});

window.addEventListener('resize', resize);
resize();
</script>
</body>
</html>
`, title, title, graphDataJSON)
}
